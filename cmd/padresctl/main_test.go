package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameCSV = "game_date,game_bam_id,at_bat_number,inning,pitch_seq,event_type,description," +
	"batter_team,batter_bam_id,batter_name_first,batter_name_last,batter_position," +
	"pitcher_team,pitcher_bam_id,pitcher_name_first,pitcher_name_last," +
	"hit_exit_speed,hit_vertical_angle,hit_distance,in_play,pitch_type,rel_speed,pre_outs,post_outs\n" +
	"2024-04-01,745001,1,1,1,,,San Diego Padres,592518,Manny,Machado,3B,Los Angeles Dodgers,669373,Tyler,Glasnow,,,,false,4S,97.1,0,0\n" +
	"2024-04-01,745001,1,1,2,home_run,,San Diego Padres,592518,Manny,Machado,3B,Los Angeles Dodgers,669373,Tyler,Glasnow,108.4,27.5,412,true,SL,88.0,0,0\n" +
	"2024-04-01,745001,2,1,1,strikeout,,Los Angeles Dodgers,660271,Shohei,Ohtani,DH,San Diego Padres,605483,Dylan,Cease,,,,false,SL,86.4,0,1\n"

const infoCSV = "bam_id,first_name,last_name,age,height,weight,position,birth_place,image_url\n" +
	"592518,Manny,Machado,31,75,218,3B,\"Miami, FL\",\n"

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestImportThenReport(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "game.csv")
	info := filepath.Join(dir, "info.csv")
	require.NoError(t, os.WriteFile(data, []byte(gameCSV), 0o600))
	require.NoError(t, os.WriteFile(info, []byte(infoCSV), 0o600))

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "padres.db"))

	prom := filepath.Join(dir, "import.prom")
	out := execute(t, "import", "--data", data, "--info", info, "--metrics-file", prom)
	assert.Contains(t, out, "Imported 2 players, 2 batting rows, 1 pitching rows (0 skipped)")

	counters, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(counters), `padres_import_rows_total{table="batting_info"} 2`)
	assert.Contains(t, string(counters), `padres_import_rows_total{table="player_bio"} 2`)

	out = execute(t, "leaderboard", "batting")
	assert.Contains(t, out, "Manny Machado")
	assert.Contains(t, out, "108.4")

	out = execute(t, "stats", "batting", "--player", "1")
	assert.Contains(t, out, "Manny Machado  |  #1  |  3B")
	assert.Contains(t, out, "4.000")

	out = execute(t, "stats", "pitching", "--player", "2")
	assert.Contains(t, out, "Dylan Cease")
	assert.Contains(t, out, "Pitch Mix")
}

func TestLeaderboardRejectsUnknownKind(t *testing.T) {
	rootCmd.SetArgs([]string{"leaderboard", "fielding"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
