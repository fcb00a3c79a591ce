package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecotrack/internal/catalog"
	"ecotrack/internal/model"
	"ecotrack/internal/service"
	"ecotrack/internal/service/mocks"
	"ecotrack/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testEmail = "ada@example.com"
	testToken = "token-123"
)

func newTestAuth() *auth.SessionAuth {
	gw := new(mocks.MockProfileGateway)
	gw.On("CurrentUser", mock.Anything, testToken).
		Return(&model.User{Email: testEmail, FullName: "Ada", Location: "Detroit, Michigan"}, nil)
	gw.On("CurrentUser", mock.Anything, mock.Anything).
		Return(nil, model.ErrNotAuthenticated)
	return auth.NewSessionAuth(gw)
}

func newTestRouter(register func(g *gin.RouterGroup, a *auth.SessionAuth)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router.Group("/api/v1"), newTestAuth())
	return router
}

func doRequest(router http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

var (
	isSession   = mock.MatchedBy(func(s *model.Session) bool { return s != nil && s.Email == testEmail && s.Token == testToken })
	isAnonymous = mock.MatchedBy(func(s *model.Session) bool { return s == nil })
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: unknown subcategory", service.ErrInvalidSelection), http.StatusBadRequest},
		{service.ErrInvalidGoal, http.StatusBadRequest},
		{service.ErrEmptyMessage, http.StatusBadRequest},
		{service.ErrNotAuthenticated, http.StatusUnauthorized},
		{service.ErrProgressNotFound, http.StatusNotFound},
		{service.ErrChallengeNotFound, http.StatusNotFound},
		{service.ErrEventNotFound, http.StatusNotFound},
		{service.ErrEventFull, http.StatusConflict},
		{fmt.Errorf("create activity: %w: %w", service.ErrBackendRequestFailed, errors.New("timeout")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestActivityRoutes_LogActivity(t *testing.T) {
	as := new(MockActivityService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewActivityRoutes(g, as, a) })

	input := service.LogActivityInput{Category: "diet", Subcategory: "Beef (per kg)", Quantity: 2}
	body := `{"category":"diet","subcategory":"Beef (per kg)","quantity":2}`

	tests := []struct {
		name       string
		authed     bool
		setup      func()
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			authed:     true,
			setup:      func() { as.On("Record", mock.Anything, isSession, input).Return(&service.RecordResult{PointsEarned: 5}, nil).Once() },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "anonymous rejected before the service",
			authed:     false,
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
			wantError:  "authorization header is required",
		},
		{
			name:   "invalid selection",
			authed: true,
			setup: func() {
				as.On("Record", mock.Anything, isSession, input).
					Return(nil, fmt.Errorf("%w: quantity must be greater than zero", service.ErrInvalidSelection)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid activity selection: quantity must be greater than zero",
		},
		{
			name:   "backend failure hides details",
			authed: true,
			setup: func() {
				as.On("Record", mock.Anything, isSession, input).
					Return(nil, fmt.Errorf("create activity: %w: %w", service.ErrBackendRequestFailed, errors.New("dial tcp"))).Once()
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "failed to log activity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as.ExpectedCalls = nil
			as.Calls = nil
			tt.setup()

			w := doRequest(router, http.MethodPost, "/api/v1/activities", body, tt.authed)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorBody(t, w))
			}
			if !tt.authed {
				as.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
			}
			as.AssertExpectations(t)
		})
	}
}

func TestActivityRoutes_Preview(t *testing.T) {
	as := new(MockActivityService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewActivityRoutes(g, as, a) })

	as.On("Preview", "transport", "Bike", 10.0).
		Return(&service.ImpactPreview{Category: model.CategoryTransport, Subcategory: "Bike", CO2Impact: -4.1, PointsEarned: 41, IsOffset: true}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/activities/preview?category=transport&subcategory=Bike&quantity=10", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var preview service.ImpactPreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.Equal(t, 41, preview.PointsEarned)
	assert.True(t, preview.IsOffset)

	w = doRequest(router, http.MethodGet, "/api/v1/activities/preview?category=transport&subcategory=Bike&quantity=lots", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid quantity", errorBody(t, w))
}

func TestActivityRoutes_QuickOffset(t *testing.T) {
	as := new(MockActivityService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewActivityRoutes(g, as, a) })

	as.On("QuickOffset", mock.Anything, isSession, "Plant a tree").
		Return(&service.RecordResult{PointsEarned: 0}, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/activities/offsets", `{"action":"Plant a tree"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/activities/offsets", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	as.AssertNumberOfCalls(t, "QuickOffset", 1)
}

func TestActivityRoutes_Catalog(t *testing.T) {
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewActivityRoutes(g, new(MockActivityService), a) })

	w := doRequest(router, http.MethodGet, "/api/v1/activities/factors", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var factors []catalog.CategoryFactors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &factors))
	assert.Len(t, factors, len(model.Categories))

	w = doRequest(router, http.MethodGet, "/api/v1/activities/offsets", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var offsets []catalog.OffsetAction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offsets))
	assert.Len(t, offsets, len(catalog.OffsetActions()))
}

func TestDashboardRoutes(t *testing.T) {
	ds := new(MockDashboardService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewDashboardRoutes(g, ds, a) })

	ds.On("GetDashboard", mock.Anything, isSession).Return(&service.Dashboard{TodayNet: 12.5}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/dashboard", "", true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/dashboard", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ds.AssertNumberOfCalls(t, "GetDashboard", 1)
}

func TestProfileRoutes_UpdateDailyGoal(t *testing.T) {
	ps := new(MockProfileService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewProfileRoutes(g, ps, a) })

	tests := []struct {
		name       string
		body       string
		setup      func()
		wantStatus int
	}{
		{
			name:       "updated",
			body:       `{"daily_goal":8}`,
			setup:      func() { ps.On("UpdateDailyGoal", mock.Anything, isSession, 8.0).Return(&model.UserProgress{DailyGoal: 8}, nil).Once() },
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid goal",
			body:       `{"daily_goal":0}`,
			setup:      func() { ps.On("UpdateDailyGoal", mock.Anything, isSession, 0.0).Return(nil, service.ErrInvalidGoal).Once() },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no progress row",
			body:       `{"daily_goal":3}`,
			setup:      func() { ps.On("UpdateDailyGoal", mock.Anything, isSession, 3.0).Return(nil, service.ErrProgressNotFound).Once() },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			body:       `{"daily_goal":"lots"}`,
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps.ExpectedCalls = nil
			tt.setup()

			w := doRequest(router, http.MethodPut, "/api/v1/profile/goal", tt.body, true)

			assert.Equal(t, tt.wantStatus, w.Code)
			ps.AssertExpectations(t)
		})
	}
}

func TestCompeteRoutes(t *testing.T) {
	cs := new(MockCompeteService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewCompeteRoutes(g, cs, a) })

	cs.On("GetLeaderboard", mock.Anything, isAnonymous).Return(&service.Leaderboard{Total: 3}, nil).Once()
	w := doRequest(router, http.MethodGet, "/api/v1/compete/leaderboard", "", false)
	assert.Equal(t, http.StatusOK, w.Code)

	cs.On("GetLeaderboard", mock.Anything, isSession).Return(&service.Leaderboard{Rank: 2, Total: 3}, nil).Once()
	w = doRequest(router, http.MethodGet, "/api/v1/compete/leaderboard", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	var board service.Leaderboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Equal(t, 2, board.Rank)

	cs.On("JoinChallenge", mock.Anything, isSession, "missing").Return(nil, service.ErrChallengeNotFound).Once()
	w = doRequest(router, http.MethodPost, "/api/v1/compete/challenges/missing/join", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.ErrChallengeNotFound.Error(), errorBody(t, w))

	cs.AssertExpectations(t)
}

func TestLocalRoutes_RegisterForEvent(t *testing.T) {
	ls := new(MockLocalService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewLocalRoutes(g, ls, a) })

	ls.On("RegisterForEvent", mock.Anything, isSession, "evt-1").Return(nil, service.ErrEventFull).Once()
	w := doRequest(router, http.MethodPost, "/api/v1/local/events/evt-1/register", "", true)
	assert.Equal(t, http.StatusConflict, w.Code)

	ls.On("RegisterForEvent", mock.Anything, isSession, "evt-2").
		Return(&model.VolunteerEvent{ID: "evt-2", RegisteredUsers: []string{testEmail}}, nil).Once()
	w = doRequest(router, http.MethodPost, "/api/v1/local/events/evt-2/register", "", true)
	assert.Equal(t, http.StatusOK, w.Code)

	ls.AssertExpectations(t)
}

func TestLocalRoutes_Wildlife(t *testing.T) {
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewLocalRoutes(g, new(MockLocalService), a) })

	californiaCards := len(catalog.WildlifeFor("California").Cards())
	michiganCards := len(catalog.WildlifeFor("Michigan").Cards())

	tests := []struct {
		name      string
		query     string
		authed    bool
		wantArea  string
		wantIndex int
		wantTotal int
	}{
		{name: "explicit area", query: "?area=San+Diego,+California", wantArea: catalog.AreaCalifornia, wantTotal: californiaCards},
		{name: "session location", query: "?card=2", authed: true, wantArea: catalog.AreaMichigan, wantIndex: 2, wantTotal: michiganCards},
		{name: "negative card wraps", query: "?area=california&card=-1", wantArea: catalog.AreaCalifornia, wantIndex: californiaCards - 1, wantTotal: californiaCards},
		{name: "anonymous default", query: "", wantArea: catalog.AreaDefault, wantTotal: len(catalog.WildlifeFor("").Cards())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/api/v1/local/wildlife"+tt.query, "", tt.authed)
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Area       string `json:"area"`
				CardIndex  int    `json:"card_index"`
				TotalCards int    `json:"total_cards"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantArea, resp.Area)
			assert.Equal(t, tt.wantIndex, resp.CardIndex)
			assert.Equal(t, tt.wantTotal, resp.TotalCards)
		})
	}

	w := doRequest(router, http.MethodGet, "/api/v1/local/wildlife?card=first", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEcoBotRoutes(t *testing.T) {
	es := new(MockEcoBotService)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewEcoBotRoutes(g, es, a) })

	w := doRequest(router, http.MethodGet, "/api/v1/ecobot/prompts", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var prompts struct {
		Greeting string   `json:"greeting"`
		Prompts  []string `json:"prompts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prompts))
	assert.Equal(t, catalog.EcoBotGreeting, prompts.Greeting)
	assert.Equal(t, catalog.QuickPrompts(), prompts.Prompts)

	es.On("Chat", mock.Anything, "   ").Return(nil, service.ErrEmptyMessage).Once()
	w = doRequest(router, http.MethodPost, "/api/v1/ecobot/chat", `{"message":"   "}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	es.On("Chat", mock.Anything, "How do I compost?").Return(&service.ChatReply{Reply: catalog.EcoBotApology, Fallback: true}, nil).Once()
	w = doRequest(router, http.MethodPost, "/api/v1/ecobot/chat", `{"message":"How do I compost?"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	var reply service.ChatReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.True(t, reply.Fallback)

	es.AssertExpectations(t)
}

func TestLearnRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewLearnRoutes(router.Group("/api/v1"))

	for _, path := range []string{"/tips", "/regions", "/facts", "/badges"} {
		w := doRequest(router, http.MethodGet, "/api/v1/learn"+path, "", false)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg wsMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func dialTrivia(t *testing.T, repo *mocks.MockRepository) *websocket.Conn {
	t.Helper()

	progress := service.NewProgressService(repo, repo, nil, service.NewCalendar(time.UTC))
	ts := service.NewTriviaService(repo, progress)
	router := newTestRouter(func(g *gin.RouterGroup, a *auth.SessionAuth) { NewTriviaRoutes(g, ts, a) })

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/trivia/ws"
	header := http.Header{"Authorization": []string{"Bearer " + testToken}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestTriviaSocket_Game(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("ListTriviaQuestions", mock.Anything).Return([]*model.TriviaQuestion{{
		ID:            "q1",
		Question:      "Which gas do trees absorb?",
		Options:       []string{"Oxygen", "Carbon dioxide"},
		CorrectAnswer: "Carbon dioxide",
	}}, nil)
	repo.On("GetProgressByUser", mock.Anything, testEmail).Return(nil, model.ErrNotFound)

	conn := dialTrivia(t, repo)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": MessageNextQuestion}))
	msg := readMessage(t, conn)
	require.Equal(t, MessageQuestion, msg.Type)
	assert.NotContains(t, string(msg.Payload), "correct_answer")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": MessageAnswer, "payload": map[string]string{"answer": "Carbon dioxide"}}))
	msg = readMessage(t, conn)
	require.Equal(t, MessageAnswerResult, msg.Type)

	var result service.AnswerResult
	require.NoError(t, json.Unmarshal(msg.Payload, &result))
	assert.True(t, result.Correct)
	assert.Equal(t, model.DefaultTriviaPoints, result.PointsEarned)
	assert.Equal(t, model.DefaultTriviaPoints, result.Score)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": MessageAnswer, "payload": map[string]string{"answer": "Oxygen"}}))
	msg = readMessage(t, conn)
	require.Equal(t, MessageError, msg.Type)

	var errPayload errorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &errPayload))
	assert.Equal(t, ErrCodeAlreadyAnswered, errPayload.Code)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": MessageState}))
	msg = readMessage(t, conn)
	require.Equal(t, MessageState, msg.Type)

	var state service.GameState
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	assert.Equal(t, testEmail, state.UserEmail)
	assert.Equal(t, 1, state.Answered)
	assert.True(t, state.Revealed)
}

func TestTriviaSocket_Errors(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("ListTriviaQuestions", mock.Anything).Return([]*model.TriviaQuestion{}, nil)

	conn := dialTrivia(t, repo)

	tests := []struct {
		name     string
		send     string
		wantCode string
	}{
		{name: "empty question set", send: `{"type":"next_question"}`, wantCode: ErrCodeNoQuestions},
		{name: "answer before question", send: `{"type":"answer","payload":{"answer":"x"}}`, wantCode: ErrCodeNoActiveQuestion},
		{name: "unknown type", send: `{"type":"ball_hit"}`, wantCode: ErrCodeBadMessage},
		{name: "not json", send: `hello`, wantCode: ErrCodeBadMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.send)))
			msg := readMessage(t, conn)
			require.Equal(t, MessageError, msg.Type)

			var payload errorPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, tt.wantCode, payload.Code)
		})
	}
}
