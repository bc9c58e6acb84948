package storage

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"placar-backend/models"
)

func newTestService(capacity int) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, capacity), store
}

func testTeam(id, name string) models.Team {
	return models.Team{ID: id, Name: name, Players: []models.Player{}}
}

func testMatch(id, home, away string) models.Match {
	return models.Match{ID: id, HomeTeamID: home, AwayTeamID: away, HomeScore: 1, AwayScore: 0, Events: []models.MatchEvent{}}
}

func TestLoadDefaultsWhenEmptyOrCorrupt(t *testing.T) {
	svc, store := newTestService(0)

	got := svc.Load()
	if len(got.Teams) != 0 || len(got.Matches) != 0 {
		t.Fatalf("expected empty defaults, got %+v", got)
	}
	if got.AdminAuth.IsAuthenticated || got.AdminAuth.Password != "" {
		t.Fatalf("expected default admin auth, got %+v", got.AdminAuth)
	}

	// A corrupt blob is absence, not an error.
	if err := store.Set("placar_data", "{not json"); err != nil {
		t.Fatal(err)
	}
	got = svc.Load()
	if len(got.Teams) != 0 {
		t.Fatalf("expected defaults for corrupt blob, got %+v", got)
	}
}

func TestSaveTeamUpserts(t *testing.T) {
	svc, _ := newTestService(0)

	team := testTeam("t1", "Alfa")
	if !svc.SaveTeam(team) {
		t.Fatal("save failed")
	}

	team.Name = "Alfa FC"
	if !svc.SaveTeam(team) {
		t.Fatal("update failed")
	}

	teams := svc.GetTeams()
	if len(teams) != 1 {
		t.Fatalf("expected 1 team after upsert, got %d", len(teams))
	}
	if teams[0].Name != "Alfa FC" {
		t.Fatalf("expected updated name, got %q", teams[0].Name)
	}
}

func TestDeleteTeamCascadesToMatches(t *testing.T) {
	svc, _ := newTestService(0)

	svc.SaveTeam(testTeam("t1", "Alfa"))
	svc.SaveTeam(testTeam("t2", "Bravo"))
	svc.SaveTeam(testTeam("t3", "Charlie"))
	svc.SaveMatch(testMatch("m1", "t1", "t2"))
	svc.SaveMatch(testMatch("m2", "t3", "t1"))
	svc.SaveMatch(testMatch("m3", "t2", "t3"))

	if !svc.DeleteTeam("t1") {
		t.Fatal("delete failed")
	}

	matches := svc.GetMatches()
	if len(matches) != 1 || matches[0].ID != "m3" {
		t.Fatalf("expected only m3 to survive the cascade, got %+v", matches)
	}
}

func TestDeleteTeamMissingReturnsFalse(t *testing.T) {
	svc, _ := newTestService(0)
	svc.SaveTeam(testTeam("t1", "Alfa"))

	if svc.DeleteTeam("nope") {
		t.Fatal("expected false for unknown team")
	}
	if len(svc.GetTeams()) != 1 {
		t.Fatal("store must be untouched on a failed delete")
	}
}

func TestPlayerLifecycle(t *testing.T) {
	svc, _ := newTestService(0)
	svc.SaveTeam(testTeam("t1", "Alfa"))

	player := models.Player{ID: "p1", Name: "Ana", Number: 10}
	if !svc.AddPlayer("t1", player) {
		t.Fatal("add failed")
	}
	if svc.AddPlayer("missing", player) {
		t.Fatal("expected false for unknown team")
	}

	player.Goals = 3
	if !svc.UpdatePlayer("t1", player) {
		t.Fatal("update failed")
	}
	if svc.UpdatePlayer("t1", models.Player{ID: "ghost"}) {
		t.Fatal("expected false for unknown player")
	}

	teams := svc.GetTeams()
	if len(teams[0].Players) != 1 || teams[0].Players[0].Goals != 3 {
		t.Fatalf("unexpected roster state: %+v", teams[0].Players)
	}

	if !svc.DeletePlayer("t1", "p1") {
		t.Fatal("delete failed")
	}
	if svc.DeletePlayer("t1", "p1") {
		t.Fatal("expected false deleting twice")
	}
	if len(svc.GetTeams()[0].Players) != 0 {
		t.Fatal("player not removed")
	}
}

func TestAdminAuthRoundTrip(t *testing.T) {
	svc, _ := newTestService(0)

	if !svc.SetAdminAuth(models.AdminAuth{IsAuthenticated: true, Password: "segredo"}) {
		t.Fatal("set failed")
	}
	got := svc.AdminAuth()
	if !got.IsAuthenticated || got.Password != "segredo" {
		t.Fatalf("unexpected admin auth: %+v", got)
	}
}

func TestSaveFailsOverCapacityWithoutPartialWrite(t *testing.T) {
	svc, _ := newTestService(600)

	small := testTeam("t1", "Alfa")
	if !svc.SaveTeam(small) {
		t.Fatal("small save should fit")
	}

	// One team, so the match-log truncation does not apply, and the
	// shield is not a decodable image, so compaction cannot help either.
	big := testTeam("t2", "Bravo")
	big.Shield = strings.Repeat("x", 2000)
	if svc.SaveTeam(big) {
		t.Fatal("expected save over capacity to fail")
	}

	got := svc.Load()
	if len(got.Teams) != 1 || got.Teams[0].ID != "t1" {
		t.Fatalf("failed save must leave previous data intact, got %+v", got.Teams)
	}
}

func TestSaveTruncatesMatchLogWhenLeagueIsLarge(t *testing.T) {
	data := models.DefaultAppData()
	for i := 0; i < 11; i++ {
		data.Teams = append(data.Teams, testTeam(fmt.Sprintf("t%d", i), fmt.Sprintf("Time %d", i)))
	}
	for i := 0; i < 60; i++ {
		data.Matches = append(data.Matches, testMatch(fmt.Sprintf("m%d", i), "t0", "t1"))
	}

	truncated := data
	truncated.Matches = data.Matches[len(data.Matches)-shrinkMatchKeep:]

	fullRaw, err := json.Marshal(&data)
	require.NoError(t, err)
	truncRaw, err := json.Marshal(&truncated)
	require.NoError(t, err)

	// Capacity between the full and the truncated payload forces exactly
	// one round of match-log cleanup.
	svc, _ := newTestService((len(fullRaw) + len(truncRaw)) / 2)

	require.True(t, svc.Save(data))

	matches := svc.GetMatches()
	require.Len(t, matches, shrinkMatchKeep)
	require.Equal(t, "m10", matches[0].ID, "oldest surviving match must be the 10th")
	require.Equal(t, "m59", matches[49].ID)
	require.Len(t, svc.GetTeams(), 11, "teams are never dropped by cleanup")
}

func noisePNGDataURI(t *testing.T, size int) string {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestShieldCompactionRunsInBackground(t *testing.T) {
	shield := noisePNGDataURI(t, 200)
	if len(shield) <= shieldSizeThreshold {
		t.Fatalf("test shield too small to trigger compaction: %d bytes", len(shield))
	}

	svc, _ := newTestService(120_000)

	team := testTeam("t1", "Alfa")
	team.Shield = shield

	// The triggering save must not wait for the image work, so it still
	// fails on capacity.
	if svc.SaveTeam(team) {
		t.Fatal("expected the triggering save to fail before compaction completes")
	}

	select {
	case <-svc.ShrinkDone():
	case <-time.After(10 * time.Second):
		t.Fatal("shield compaction did not finish")
	}

	got := svc.Load()
	if len(got.Teams) != 1 {
		t.Fatalf("expected compacted snapshot to be written, got %d teams", len(got.Teams))
	}
	if !strings.HasPrefix(got.Teams[0].Shield, "data:image/jpeg;base64,") {
		t.Fatal("shield was not re-encoded as a jpeg data URI")
	}
	if len(got.Teams[0].Shield) >= len(shield) {
		t.Fatal("compacted shield is not smaller than the original")
	}
}

func TestShrinkDoneWithoutPendingWork(t *testing.T) {
	svc, _ := newTestService(0)
	select {
	case <-svc.ShrinkDone():
	case <-time.After(time.Second):
		t.Fatal("expected an already-closed channel when nothing is pending")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _ := newTestService(0)
	team := testTeam("t1", "Alfa")
	team.Players = []models.Player{{ID: "p1", Name: "Ana", Number: 9, Goals: 4}}
	svc.SaveTeam(team)
	svc.SaveMatch(testMatch("m1", "t1", "t2"))
	svc.SetAdminAuth(models.AdminAuth{IsAuthenticated: false, Password: "pw"})

	before := svc.Load()

	snapshot, err := svc.ExportSnapshot()
	require.NoError(t, err)

	// Import into a fresh service backed by a different store.
	other, _ := newTestService(0)
	require.True(t, other.ImportSnapshot(snapshot))
	require.Equal(t, before, other.Load())
}

func TestImportRejectsGarbageWithoutTouchingState(t *testing.T) {
	svc, _ := newTestService(0)
	svc.SaveTeam(testTeam("t1", "Alfa"))

	if svc.ImportSnapshot("{broken") {
		t.Fatal("expected import of invalid JSON to fail")
	}
	if len(svc.GetTeams()) != 1 {
		t.Fatal("failed import must not alter stored state")
	}
}

func TestResetClearsEverything(t *testing.T) {
	svc, _ := newTestService(0)
	svc.SaveTeam(testTeam("t1", "Alfa"))

	if !svc.Reset() {
		t.Fatal("reset failed")
	}
	got := svc.Load()
	if len(got.Teams) != 0 || len(got.Matches) != 0 {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
}

func TestUsageInfoTracksSerializedSize(t *testing.T) {
	svc, _ := newTestService(1000)

	info := svc.UsageInfo()
	if info.CapacityBytes != 1000 {
		t.Fatalf("expected capacity 1000, got %d", info.CapacityBytes)
	}
	emptyUsed := info.UsedBytes
	if emptyUsed <= 0 {
		t.Fatal("even the default blob serializes to something")
	}

	svc.SaveTeam(testTeam("t1", "Alfa"))
	info = svc.UsageInfo()
	if info.UsedBytes <= emptyUsed {
		t.Fatal("usage must grow after adding a team")
	}
	want := float64(info.UsedBytes) / float64(info.CapacityBytes) * 100
	if info.Percentage != want {
		t.Fatalf("percentage mismatch: got %f want %f", info.Percentage, want)
	}
}

func TestUserAccounts(t *testing.T) {
	svc, _ := newTestService(0)

	user := models.StoredUser{ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
	if !svc.AddUser(user) {
		t.Fatal("add user failed")
	}
	if svc.AddUser(models.StoredUser{ID: "u2", Email: "ANA@example.com"}) {
		t.Fatal("duplicate email must be rejected")
	}

	got, ok := svc.FindUserByEmail("Ana@Example.com")
	if !ok || got.ID != "u1" {
		t.Fatalf("lookup by email failed: %+v ok=%v", got, ok)
	}
	if _, ok := svc.FindUserByID("u1"); !ok {
		t.Fatal("lookup by id failed")
	}
	if _, ok := svc.FindUserByEmail("nobody@example.com"); ok {
		t.Fatal("expected miss for unknown email")
	}
}
