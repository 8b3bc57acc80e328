package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"art-contest/internal/models"
	"art-contest/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ctlEnv struct {
	db  *gorm.DB
	out *bytes.Buffer
}

func newCtlEnv(t *testing.T) *ctlEnv {
	t.Helper()
	return &ctlEnv{db: testutil.NewDB(t), out: &bytes.Buffer{}}
}

func (e *ctlEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	app := newApp(func() (*ctl, func(), error) {
		return newCtl(e.db, e.out), func() {}, nil
	})
	return app.Run(append([]string{"jackpotctl"}, args...))
}

func (e *ctlEnv) output(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &out))
	return out
}

func TestNewAppCommands(t *testing.T) {
	app := newApp(openDatabase)

	for _, name := range []string{"draw-winner", "award-entries", "process-results", "set-role"} {
		cmd := app.Command(name)
		require.NotNil(t, cmd, name)
		assert.NotNil(t, cmd.Action, name)
	}
}

func TestDrawWinnerRequiresDrawFlag(t *testing.T) {
	env := newCtlEnv(t)
	err := env.run(t, "draw-winner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draw")
}

func TestAwardEntriesCommand(t *testing.T) {
	env := newCtlEnv(t)
	artist := testutil.CreateProfile(t, env.db, "artist", "")
	draw := testutil.CreateDraw(t, env.db, 100)

	require.NoError(t, env.run(t, "award-entries", "--user", artist.ID.String(), "--count", "7"))
	out := env.output(t)
	assert.Equal(t, string(models.EntrySourceAdminBonus), out["source_reason"])
	assert.Equal(t, draw.ID.String(), out["draw_id"])

	var profile models.Profile
	require.NoError(t, env.db.First(&profile, "id = ?", artist.ID).Error)
	assert.Equal(t, 7, profile.CurrentJackpotEntries)

	err := env.run(t, "award-entries", "--user", artist.ID.String(), "--count", "0")
	assert.Error(t, err)
}

func TestDrawWinnerCommand(t *testing.T) {
	env := newCtlEnv(t)
	artist := testutil.CreateProfile(t, env.db, "artist", "")
	draw := testutil.CreateDraw(t, env.db, 250)
	require.NoError(t, env.run(t, "award-entries", "--user", artist.ID.String(), "--count", "3"))

	require.NoError(t, env.run(t, "draw-winner", "--draw", draw.ID.String()))
	out := env.output(t)
	assert.Equal(t, artist.ID.String(), out["winner_user_id"])
	assert.Equal(t, "artist", out["winner_username"])
	assert.EqualValues(t, 3, out["total_entries"])

	err := env.run(t, "draw-winner", "--draw", draw.ID.String())
	assert.Error(t, err)
}

func TestProcessResultsCommand(t *testing.T) {
	env := newCtlEnv(t)
	admin := testutil.CreateProfile(t, env.db, "admin", models.RoleAdmin)
	artist := testutil.CreateProfile(t, env.db, "artist", "")
	first := testutil.CreateContest(t, env.db, admin.ID, time.Now().Add(time.Hour))
	testutil.CreateSubmission(t, env.db, first.ID, artist.ID, 5)
	ended := testutil.CreateContest(t, env.db, admin.ID, time.Now().Add(-time.Minute))
	testutil.CreateSubmission(t, env.db, ended.ID, artist.ID, 1)

	require.NoError(t, env.run(t, "process-results", "--contest", first.ID.String()))
	assert.Equal(t, first.ID.String(), env.output(t)["contest_id"])

	require.NoError(t, env.run(t, "process-results"))
	assert.EqualValues(t, 1, env.output(t)["processed"])

	var profile models.Profile
	require.NoError(t, env.db.First(&profile, "id = ?", artist.ID).Error)
	assert.Equal(t, 20, profile.CurrentJackpotEntries)
}

func TestSetRoleCommand(t *testing.T) {
	env := newCtlEnv(t)
	user := testutil.CreateProfile(t, env.db, "painter", "")

	require.NoError(t, env.run(t, "set-role", "--profile", user.ID.String(), "--role", models.RoleAdmin))
	assert.Equal(t, models.RoleAdmin, env.output(t)["role"])

	assert.Error(t, env.run(t, "set-role", "--profile", user.ID.String(), "--role", "owner"))
	assert.Error(t, env.run(t, "set-role", "--profile", uuid.NewString(), "--role", models.RoleUser))
}

func TestCommandsRejectInvalidIDs(t *testing.T) {
	env := newCtlEnv(t)

	cases := []struct {
		args []string
		flag string
	}{
		{[]string{"draw-winner", "--draw", "not-a-uuid"}, "--draw"},
		{[]string{"award-entries", "--user", "123"}, "--user"},
		{[]string{"award-entries", "--user", uuid.NewString(), "--competition", "x"}, "--competition"},
		{[]string{"process-results", "--contest", "abc"}, "--contest"},
		{[]string{"set-role", "--profile", "abc", "--role", "admin"}, "--profile"},
	}
	for _, tc := range cases {
		err := env.run(t, tc.args...)
		require.Error(t, err, tc.args)
		assert.Contains(t, err.Error(), "invalid "+tc.flag)
	}
}
