package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"
)

// QuestionView is a question as shown before it is answered. It never carries the correct answer.
type QuestionView struct {
	ID         string           `json:"id"`
	Question   string           `json:"question"`
	Options    []string         `json:"options"`
	Difficulty model.Difficulty `json:"difficulty"`
	Category   string           `json:"category"`
	EcoPoints  int              `json:"eco_points"`
}

func newQuestionView(q *model.TriviaQuestion) *QuestionView {
	return &QuestionView{
		ID:         q.ID,
		Question:   q.Question,
		Options:    append([]string(nil), q.Options...),
		Difficulty: q.Difficulty,
		Category:   q.Category,
		EcoPoints:  q.Points(),
	}
}

type AnswerResult struct {
	Correct       bool                `json:"correct"`
	CorrectAnswer string              `json:"correct_answer"`
	Explanation   string              `json:"explanation,omitempty"`
	FunFact       string              `json:"fun_fact,omitempty"`
	PointsEarned  int                 `json:"points_earned"`
	Score         int                 `json:"score"`
	Progress      *model.UserProgress `json:"progress,omitempty"`
}

type GameState struct {
	Score     int           `json:"score"`
	Answered  int           `json:"answered"`
	Correct   int           `json:"correct"`
	Question  *QuestionView `json:"question,omitempty"`
	Revealed  bool          `json:"revealed"`
	UserEmail string        `json:"user_email"`
}

// TriviaGame is the per-connection quiz state. The score lives only as long as the game.
type TriviaGame struct {
	email    string
	score    int
	answered int
	correct  int
	current  *model.TriviaQuestion
	revealed bool
	mu       sync.Mutex
}

func (g *TriviaGame) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := GameState{
		Score:     g.score,
		Answered:  g.answered,
		Correct:   g.correct,
		Revealed:  g.revealed,
		UserEmail: g.email,
	}
	if g.current != nil {
		st.Question = newQuestionView(g.current)
	}
	return st
}

type TriviaService struct {
	repo     TriviaRepository
	progress *ProgressService
	intn     func(n int) int
}

func NewTriviaService(repo TriviaRepository, progress *ProgressService) *TriviaService {
	return &TriviaService{
		repo:     repo,
		progress: progress,
		intn:     rand.Intn,
	}
}

func (s *TriviaService) NewGame(session *model.Session) *TriviaGame {
	return &TriviaGame{email: session.UserEmail()}
}

// NextQuestion picks a uniformly random question from the current set.
func (s *TriviaService) NextQuestion(ctx context.Context, game *TriviaGame) (*QuestionView, error) {
	questions, err := s.repo.ListTriviaQuestions(ctx)
	if err != nil {
		logger.Logger().Error("failed to list trivia questions", zap.Error(err))
		return nil, backendErr("list trivia questions", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	q := questions[s.intn(len(questions))]

	game.mu.Lock()
	game.current = q
	game.revealed = false
	game.mu.Unlock()

	return newQuestionView(q), nil
}

// Answer reveals the current question. A correct answer adds the question's points to the game
// score and to the persisted eco_points when the user has a progress row.
func (s *TriviaService) Answer(ctx context.Context, game *TriviaGame, answer string) (*AnswerResult, error) {
	game.mu.Lock()
	q := game.current
	switch {
	case q == nil:
		game.mu.Unlock()
		return nil, ErrNoActiveQuestion
	case game.revealed:
		game.mu.Unlock()
		return nil, ErrAlreadyAnswered
	}

	game.revealed = true
	game.answered++

	result := &AnswerResult{
		Correct:       strings.TrimSpace(answer) == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		FunFact:       q.FunFact,
	}
	if result.Correct {
		result.PointsEarned = q.Points()
		game.score += result.PointsEarned
		game.correct++
	}
	result.Score = game.score
	email := game.email
	game.mu.Unlock()

	if !result.Correct || email == "" {
		return result, nil
	}

	progress, err := s.progress.AwardPoints(ctx, email, result.PointsEarned)
	if err != nil {
		logger.Logger().Error("failed to award trivia points",
			zap.String("user_email", email),
			zap.String("question_id", q.ID),
			zap.Error(err))
		return result, err
	}
	result.Progress = progress

	return result, nil
}
