package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltwind/grandline/api/internal/dice"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/repository"
	"github.com/saltwind/grandline/api/internal/service"
	"github.com/saltwind/grandline/api/internal/store"
)

type sessionFixture struct {
	mux        *http.ServeMux
	characters *repository.CharacterRepository
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	st := store.NewMemoryStore()
	sessions := service.NewSessionService(service.SessionServiceConfig{
		Repo:   repository.NewSessionRepository(st),
		Roller: dice.NewSeeded(42),
	})
	characters := repository.NewCharacterRepository(st)
	progress := service.NewProgressService(service.ProgressServiceConfig{
		CharacterRepo: characters,
	})

	h := NewSessionHandler(sessions, progress)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/sessions/{sessionId}", h.Get)
	mux.HandleFunc("PUT /v1/sessions/{sessionId}", h.Put)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/players", h.AddPlayer)
	mux.HandleFunc("PATCH /v1/sessions/{sessionId}/players/{playerId}", h.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/sessions/{sessionId}/players/{playerId}", h.RemovePlayer)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/enemies", h.AddEnemy)
	mux.HandleFunc("PATCH /v1/sessions/{sessionId}/enemies/{enemyId}", h.UpdateEnemy)
	mux.HandleFunc("DELETE /v1/sessions/{sessionId}/enemies/{enemyId}", h.RemoveEnemy)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/sort-initiative", h.SortInitiative)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/advance-turn", h.AdvanceTurn)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/roll", h.Roll)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/notes", h.AddNote)
	mux.HandleFunc("POST /v1/sessions/{sessionId}/save-progress", h.SaveProgress)

	return &sessionFixture{mux: mux, characters: characters}
}

func (f *sessionFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestSessionGet_UnknownReturnsDefaults(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/v1/sessions/fresh", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var session model.Session
	decodeData(t, rec.Body.Bytes(), &session)
	assert.Equal(t, "fresh", session.ID)
	assert.Equal(t, 1, session.Round)
	assert.Empty(t, session.Players)
	assert.Empty(t, session.Enemies)
}

func TestSessionAddPlayer_Defaults(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/players", model.AddCombatantRequest{Name: "Luffy"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var session model.Session
	decodeData(t, rec.Body.Bytes(), &session)
	require.Len(t, session.Players, 1)
	assert.Equal(t, "Luffy", session.Players[0].Name)
	assert.Equal(t, model.DefaultPlayerHP, session.Players[0].HP)
	assert.Equal(t, model.DefaultPlayerHP, session.Players[0].MaxHP)
	assert.Zero(t, session.Players[0].Initiative)
}

func TestSessionAddEnemy_Defaults(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/enemies", model.AddCombatantRequest{}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var session model.Session
	decodeData(t, rec.Body.Bytes(), &session)
	require.Len(t, session.Enemies, 1)
	assert.Equal(t, model.DefaultEnemyName, session.Enemies[0].Name)
	assert.Equal(t, model.DefaultEnemyHP, session.Enemies[0].HP)
	assert.Equal(t, model.DefaultEnemyAC, session.Enemies[0].AC)
}

func TestSessionUpdatePlayer_MergesFields(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/players", model.AddCombatantRequest{Name: "Zoro"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var session model.Session
	decodeData(t, rec.Body.Bytes(), &session)
	playerID := session.Players[0].ID

	hp := 31
	rec = f.do(jsonRequest(http.MethodPatch, "/v1/sessions/s1/players/"+playerID, model.PlayerUpdate{HP: &hp}))
	require.Equal(t, http.StatusOK, rec.Code)

	decodeData(t, rec.Body.Bytes(), &session)
	assert.Equal(t, 31, session.Players[0].HP)
	assert.Equal(t, "Zoro", session.Players[0].Name)
}

func TestSessionUpdatePlayer_UnknownIs404(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	hp := 10
	rec := f.do(jsonRequest(http.MethodPatch, "/v1/sessions/s1/players/nope", model.PlayerUpdate{HP: &hp}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionSortInitiative_OrdersDescending(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	names := []string{"Slow", "Fast", "Mid"}
	inits := []int{3, 19, 11}
	var session model.Session
	for i, name := range names {
		rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/players", model.AddCombatantRequest{Name: name}))
		require.Equal(t, http.StatusCreated, rec.Code)
		decodeData(t, rec.Body.Bytes(), &session)

		init := inits[i]
		rec = f.do(jsonRequest(http.MethodPatch, "/v1/sessions/s1/players/"+session.Players[i].ID, model.PlayerUpdate{Initiative: &init}))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.do(httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/sort-initiative", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	decodeData(t, rec.Body.Bytes(), &session)
	require.Len(t, session.Players, 3)
	assert.Equal(t, "Fast", session.Players[0].Name)
	assert.Equal(t, "Mid", session.Players[1].Name)
	assert.Equal(t, "Slow", session.Players[2].Name)
	assert.Zero(t, session.CurrentTurn)
}

func TestSessionAdvanceTurn_WrapsIntoNewRound(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	for _, name := range []string{"A", "B"} {
		rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/players", model.AddCombatantRequest{Name: name}))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var session model.Session
	rec := f.do(httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/advance-turn", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec.Body.Bytes(), &session)
	assert.Equal(t, 1, session.CurrentTurn)
	assert.Equal(t, 1, session.Round)

	rec = f.do(httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/advance-turn", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec.Body.Bytes(), &session)
	assert.Zero(t, session.CurrentTurn)
	assert.Equal(t, 2, session.Round)
	require.NotEmpty(t, session.Notes)
	assert.Equal(t, "Round 2 begins", session.Notes[0].Text)
}

func TestSessionRoll_RecordsResultAndNote(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/roll", model.RollRequest{Sides: 20}))
	require.Equal(t, http.StatusOK, rec.Code)

	var result RollResult
	decodeData(t, rec.Body.Bytes(), &result)
	assert.GreaterOrEqual(t, result.Result, 1)
	assert.LessOrEqual(t, result.Result, 20)
	require.NotNil(t, result.Session.LastRoll)
	assert.Equal(t, 20, result.Session.LastRoll.Sides)
	assert.Equal(t, result.Result, result.Session.LastRoll.Result)
	require.NotEmpty(t, result.Session.Notes)
}

func TestSessionRoll_InvalidDie(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/roll", model.RollRequest{Sides: 0}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSessionAddNote_Prepends(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/notes", model.AddNoteRequest{Text: "first"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/notes", model.AddNoteRequest{Text: "second"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var session model.Session
	decodeData(t, rec.Body.Bytes(), &session)
	require.Len(t, session.Notes, 2)
	assert.Equal(t, "second", session.Notes[0].Text)
	assert.Equal(t, "first", session.Notes[1].Text)
}

func TestSessionAddNote_EmptyRejected(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/notes", model.AddNoteRequest{Text: "   "}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSessionPut_OverwritesDocument(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	doc := model.NewSession("ignored", "crew:1", time.Now())
	doc.Round = 5
	doc.StoryProgress = "reached Alabasta"

	rec := f.do(jsonRequest(http.MethodPut, "/v1/sessions/s1", doc))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/v1/sessions/s1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var session model.Session
	decodeData(t, rec.Body.Bytes(), &session)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, 5, session.Round)
	assert.Equal(t, "reached Alabasta", session.StoryProgress)
}

func TestSessionSaveProgress_UpdatesMatchedCharacters(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	ctx := context.Background()
	require.NoError(t, f.characters.Save(ctx, &model.Character{
		ID: "char:1", UserID: "user:dm", Name: "Luffy", Experience: 100,
	}))
	require.NoError(t, f.characters.Save(ctx, &model.Character{
		ID: "char:2", UserID: "user:dm", Name: "Zoro", Experience: 40,
	}))

	req := asUser(jsonRequest(http.MethodPost, "/v1/sessions/s1/save-progress", model.SaveProgressRequest{
		StoryProgress: "defeated Crocodile",
		XPAwarded:     50,
		Players: []model.ProgressPlayer{
			{ID: "p1", Name: "Luffy"},
			{ID: "p2", Name: "Brook"},
		},
	}), "user:dm")

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SaveProgressResponse
	decodeData(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, 1, resp.Updated)

	luffy, err := f.characters.Get(ctx, "user:dm", "char:1")
	require.NoError(t, err)
	assert.Equal(t, 150, luffy.Experience)
	require.Len(t, luffy.SessionHistory, 1)
	assert.Equal(t, "s1", luffy.SessionHistory[0].SessionID)
	assert.Equal(t, "defeated Crocodile", luffy.SessionHistory[0].StoryProgress)

	zoro, err := f.characters.Get(ctx, "user:dm", "char:2")
	require.NoError(t, err)
	assert.Equal(t, 40, zoro.Experience)
	assert.Empty(t, zoro.SessionHistory)
}

func TestSessionSaveProgress_RequiresAuth(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/save-progress", model.SaveProgressRequest{}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionRemovePlayer_ClampsTurn(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	var session model.Session
	for _, name := range []string{"A", "B"} {
		rec := f.do(jsonRequest(http.MethodPost, "/v1/sessions/s1/players", model.AddCombatantRequest{Name: name}))
		require.Equal(t, http.StatusCreated, rec.Code)
		decodeData(t, rec.Body.Bytes(), &session)
	}

	rec := f.do(httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/advance-turn", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodDelete, "/v1/sessions/s1/players/"+session.Players[1].ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	decodeData(t, rec.Body.Bytes(), &session)
	require.Len(t, session.Players, 1)
	assert.Zero(t, session.CurrentTurn)
}
