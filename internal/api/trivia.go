package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	MessageNextQuestion = "next_question"
	MessageAnswer       = "answer"
	MessageState        = "state"
	MessageQuestion     = "question"
	MessageAnswerResult = "answer_result"
	MessageError        = "error"
)

const (
	ErrCodeNoQuestions      = "no_questions"
	ErrCodeAlreadyAnswered  = "already_answered"
	ErrCodeNoActiveQuestion = "no_active_question"
	ErrCodeBackend          = "backend_failed"
	ErrCodeBadMessage       = "bad_message"
)

// triviaRequestTimeout bounds the backend calls made for a single socket message.
const triviaRequestTimeout = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope for both directions of the trivia socket.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type triviaRoutes struct {
	ts service.TriviaServiceI
}

func NewTriviaRoutes(handler *gin.RouterGroup, ts service.TriviaServiceI, a *auth.SessionAuth) {
	r := &triviaRoutes{ts: ts}
	h := handler.Group("/trivia")
	h.Use(a.Optional())
	{
		h.GET("/ws", r.handleWebSocket)
	}
}

// handleWebSocket serves one game per connection until the client goes away.
func (r *triviaRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	session := currentSession(c)
	game := r.ts.NewGame(session)
	log.Debug("trivia game started", zap.String("user_email", session.UserEmail()))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket unexpected close", zap.Error(err))
			}
			return
		}

		var message Message
		if err := json.Unmarshal(msg, &message); err != nil {
			log.Debug("failed to unmarshal message", zap.Error(err))
			r.sendError(conn, ErrCodeBadMessage, "message is not valid JSON")
			continue
		}

		if err := r.handleMessage(conn, game, message); err != nil {
			log.Error("failed to write message", zap.Error(err))
			return
		}
	}
}

func (r *triviaRoutes) handleMessage(conn *websocket.Conn, game *service.TriviaGame, message Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), triviaRequestTimeout)
	defer cancel()

	switch message.Type {
	case MessageNextQuestion:
		question, err := r.ts.NextQuestion(ctx, game)
		if err != nil {
			return r.sendServiceError(conn, err)
		}
		return r.send(conn, MessageQuestion, question)

	case MessageAnswer:
		var payload answerPayload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				return r.sendError(conn, ErrCodeBadMessage, "answer payload is invalid")
			}
		}

		result, err := r.ts.Answer(ctx, game, payload.Answer)
		if err != nil && result == nil {
			return r.sendServiceError(conn, err)
		}
		if err != nil {
			logger.Logger().Warn("trivia points not persisted", zap.Error(err))
		}
		return r.send(conn, MessageAnswerResult, result)

	case MessageState:
		return r.send(conn, MessageState, game.State())

	default:
		return r.sendError(conn, ErrCodeBadMessage, "unknown message type "+message.Type)
	}
}

func (r *triviaRoutes) sendServiceError(conn *websocket.Conn, err error) error {
	switch {
	case errors.Is(err, service.ErrNoQuestions):
		return r.sendError(conn, ErrCodeNoQuestions, err.Error())
	case errors.Is(err, service.ErrAlreadyAnswered):
		return r.sendError(conn, ErrCodeAlreadyAnswered, err.Error())
	case errors.Is(err, service.ErrNoActiveQuestion):
		return r.sendError(conn, ErrCodeNoActiveQuestion, err.Error())
	default:
		logger.Logger().Error("trivia request failed", zap.Error(err))
		return r.sendError(conn, ErrCodeBackend, "failed to reach the backend")
	}
}

func (r *triviaRoutes) sendError(conn *websocket.Conn, code, message string) error {
	return r.send(conn, MessageError, errorPayload{Code: code, Message: message})
}

func (r *triviaRoutes) send(conn *websocket.Conn, msgType string, payload any) error {
	data, err := json.Marshal(outMessage{Type: msgType, Payload: payload})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
