// Package round orchestrates the session lifecycle: preparing rounds,
// opening and expiring timed quiz phases, resolving scores and driving the
// session toward its final leaderboard.
package round

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sipcrew/partyround/internal/leaderboard"
	"github.com/sipcrew/partyround/internal/models"
	questionbankRepo "github.com/sipcrew/partyround/internal/repositories/questionbank"
	sessionRepo "github.com/sipcrew/partyround/internal/repositories/session"
	"github.com/sipcrew/partyround/internal/services/scoring"
)

const (
	defaultStartDelay  = 3 * time.Second
	defaultAnswerGrace = 1 * time.Second
	defaultEarlyFire   = 500 * time.Millisecond
	defaultCodeLength  = 5

	defaultRoundCount       = 5
	defaultTimeLimitSeconds = 30

	codeAttempts = 5
)

// service implements the Service interface
type service struct {
	cfg *Config
	log *logrus.Logger

	// locks serializes timer callbacks against creator-driven calls for the
	// same session code
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new round service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.QuestionBank == nil {
		return nil, ErrNilQuestionBank
	}
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.Sampler == nil {
		return nil, ErrNilSampler
	}

	if cfg.StartDelay <= 0 {
		cfg.StartDelay = defaultStartDelay
	}
	if cfg.AnswerGrace <= 0 {
		cfg.AnswerGrace = defaultAnswerGrace
	}
	if cfg.EarlyFire <= 0 {
		cfg.EarlyFire = defaultEarlyFire
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = defaultCodeLength
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}

	return &service{
		cfg:   cfg,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// sessionLock returns the mutex serializing all work for one session code.
// Locks are never discarded once created.
func (s *service) sessionLock(code string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[code] = lock
	}
	return lock
}

// transition moves the session to target after checking legality.
func (s *service) transition(sess *models.Session, target models.SessionState) error {
	if !sess.State.CanTransitionTo(target) {
		s.log.WithFields(logrus.Fields{
			"code": sess.Code,
			"from": sess.State,
			"to":   target,
		}).Warn("rejected illegal state transition")
		return ErrIllegalTransition
	}
	sess.State = target
	if target.Terminal() {
		sess.Active = false
	}
	return nil
}

// save persists the session and broadcasts the new document.
func (s *service) save(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = s.cfg.Clock.Now()
	if err := s.cfg.SessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: sess,
	}); err != nil {
		return err
	}
	s.cfg.Broadcaster.BroadcastSession(sess)
	return nil
}

func (s *service) load(ctx context.Context, code string) (*models.Session, error) {
	sess, err := s.cfg.SessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// CreateSession creates a new session in the lobby state
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.CreatorID == "" {
		return nil, errors.New("input and creator ID cannot be empty")
	}

	settings := input.Settings
	if settings.RoundCount <= 0 {
		settings.RoundCount = defaultRoundCount
	}
	if settings.TimeLimitSeconds <= 0 {
		settings.TimeLimitSeconds = defaultTimeLimitSeconds
	}
	if settings.PunishmentMultiplier <= 0 {
		settings.PunishmentMultiplier = 1
	}

	sampled, err := s.cfg.QuestionBank.SampleQuestions(ctx, &questionbankRepo.SampleQuestionsInput{
		Types: settings.QuestionTypes,
		Count: settings.RoundCount,
	})
	if err != nil {
		return nil, err
	}
	if len(sampled.Questions) < settings.RoundCount {
		return &CreateSessionOutput{
			Success: false,
			Message: string(ErrNotEnoughQuestions),
		}, ErrNotEnoughQuestions
	}

	code, err := s.freeCode(ctx)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]string, 0, len(sampled.Questions))
	for _, q := range sampled.Questions {
		questionIDs = append(questionIDs, q.ID)
	}

	now := s.cfg.Clock.Now()
	sess := &models.Session{
		ID:          s.cfg.UUIDGenerator.NewUUID(),
		Code:        code,
		CreatorID:   input.CreatorID,
		PlayerIDs:   []string{input.CreatorID},
		Settings:    settings,
		QuestionIDs: questionIDs,
		State:       models.StateLobby,
		Active:      true,
		CreatedAt:   now,
	}

	lock := s.sessionLock(code)
	lock.Lock()
	defer lock.Unlock()

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"code":    code,
		"creator": input.CreatorID,
		"rounds":  settings.RoundCount,
	}).Info("session created")

	return &CreateSessionOutput{
		Success: true,
		Session: sess,
	}, nil
}

// freeCode draws join codes until one is unused.
func (s *service) freeCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := s.cfg.Sampler.Code(s.cfg.CodeLength)
		_, err := s.cfg.SessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
			Code: code,
		})
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not find a free join code")
}

// JoinSession adds a player to a session still in the lobby
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &JoinSessionOutput{Success: false, Message: err.Error()}, err
	}

	if !sess.Active {
		return &JoinSessionOutput{Success: false, Message: string(ErrSessionInactive)}, ErrSessionInactive
	}
	if sess.State != models.StateLobby {
		return &JoinSessionOutput{Success: false, Message: string(ErrInvalidSessionState)}, ErrInvalidSessionState
	}
	if sess.HasPlayer(input.PlayerID) {
		return &JoinSessionOutput{Success: false, Message: string(ErrPlayerAlreadyJoined)}, ErrPlayerAlreadyJoined
	}

	sess.PlayerIDs = append(sess.PlayerIDs, input.PlayerID)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	return &JoinSessionOutput{
		Success: true,
		Session: sess,
	}, nil
}

// LeaveSession removes a player from a session. The creator role moves to
// the longest-standing remaining player; an empty session is aborted.
func (s *service) LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &LeaveSessionOutput{Success: false, Message: err.Error()}, err
	}

	if !sess.HasPlayer(input.PlayerID) {
		return &LeaveSessionOutput{Success: false, Message: string(ErrPlayerNotInSession)}, ErrPlayerNotInSession
	}

	aborted, err := s.removePlayer(ctx, sess, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &LeaveSessionOutput{
		Success: true,
		Aborted: aborted,
	}, nil
}

// KickPlayer lets the creator remove another player
func (s *service) KickPlayer(ctx context.Context, input *KickPlayerInput) (*KickPlayerOutput, error) {
	if input == nil || input.Code == "" || input.CreatorID == "" || input.PlayerID == "" {
		return nil, errors.New("input, code, creator and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &KickPlayerOutput{Success: false, Message: err.Error()}, err
	}

	if sess.CreatorID != input.CreatorID {
		return &KickPlayerOutput{Success: false, Message: string(ErrNotCreator)}, ErrNotCreator
	}
	if input.PlayerID == sess.CreatorID {
		return &KickPlayerOutput{Success: false, Message: string(ErrCannotKickCreator)}, ErrCannotKickCreator
	}
	if !sess.HasPlayer(input.PlayerID) {
		return &KickPlayerOutput{Success: false, Message: string(ErrPlayerNotInSession)}, ErrPlayerNotInSession
	}

	if _, err := s.removePlayer(ctx, sess, input.PlayerID); err != nil {
		return nil, err
	}

	return &KickPlayerOutput{Success: true}, nil
}

// removePlayer drops the player from the membership list, reassigning the
// creator role or aborting an emptied session. Scored answers referencing
// the departed player are left untouched.
func (s *service) removePlayer(ctx context.Context, sess *models.Session, playerID string) (bool, error) {
	remaining := make([]string, 0, len(sess.PlayerIDs))
	for _, id := range sess.PlayerIDs {
		if id != playerID {
			remaining = append(remaining, id)
		}
	}
	sess.PlayerIDs = remaining

	if len(sess.PlayerIDs) == 0 {
		if err := s.transition(sess, models.StateAborted); err != nil {
			return false, err
		}
		// Any pending round timer is left in place; when it fires the
		// resolution no-ops against the aborted session.
		if err := s.save(ctx, sess); err != nil {
			return false, err
		}
		s.log.WithField("code", sess.Code).Info("session aborted, no players remain")
		return true, nil
	}

	if sess.CreatorID == playerID {
		sess.CreatorID = sess.PlayerIDs[0]
	}

	if err := s.save(ctx, sess); err != nil {
		return false, err
	}
	return false, nil
}

// StartGame prepares every round's public view and begins play
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &StartGameOutput{Success: false, Message: err.Error()}, err
	}

	if !sess.Active {
		return &StartGameOutput{Success: false, Message: string(ErrSessionInactive)}, ErrSessionInactive
	}
	if sess.CreatorID != input.PlayerID {
		return &StartGameOutput{Success: false, Message: string(ErrNotCreator)}, ErrNotCreator
	}
	if sess.State != models.StateLobby {
		return &StartGameOutput{Success: false, Message: string(ErrInvalidSessionState)}, ErrInvalidSessionState
	}

	views, err := s.prepareViews(ctx, sess)
	if err != nil {
		return &StartGameOutput{Success: false, Message: err.Error()}, err
	}

	sess.RoundQuestions = views
	sess.Answers = make([][]*models.Answer, sess.Settings.RoundCount)
	sess.Punishments = make([][]*models.Punishment, sess.Settings.RoundCount)
	sess.Leaderboard = make([]*models.LeaderboardEntry, 0, len(sess.PlayerIDs))
	for _, playerID := range sess.PlayerIDs {
		sess.Leaderboard = append(sess.Leaderboard, &models.LeaderboardEntry{
			PlayerID: playerID,
		})
	}
	sess.CurrentRound = 0

	if err := s.transition(sess, models.StateWaiting); err != nil {
		return &StartGameOutput{Success: false, Message: err.Error()}, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"code":    sess.Code,
		"players": len(sess.PlayerIDs),
		"rounds":  sess.Settings.RoundCount,
	}).Info("game started")

	// Let clients render the lobby-to-waiting transition before the first
	// question appears.
	s.cfg.Scheduler.Schedule(sess.Code, s.cfg.StartDelay, func() {
		s.onTimer(sess.Code, s.loadRound)
	})

	return &StartGameOutput{
		Success: true,
		Session: sess,
	}, nil
}

// prepareViews builds the sanitized public view for every round. Answer keys
// stay in the bank; identity archetypes sample from the current membership.
func (s *service) prepareViews(ctx context.Context, sess *models.Session) ([]*models.RoundQuestion, error) {
	views := make([]*models.RoundQuestion, 0, len(sess.QuestionIDs))
	for _, questionID := range sess.QuestionIDs {
		question, err := s.cfg.QuestionBank.GetQuestion(ctx, &questionbankRepo.GetQuestionInput{
			QuestionID: questionID,
		})
		if err != nil {
			return nil, err
		}

		view := &models.RoundQuestion{
			ID:     question.ID,
			Type:   question.Type,
			Prompt: question.Prompt,
		}

		switch question.Type {
		case models.QuestionTypeMultipleChoice, models.QuestionTypeWouldRather:
			view.Options = append([]string(nil), question.Options...)
		case models.QuestionTypeWhoWouldRather:
			if len(sess.PlayerIDs) < 2 {
				return nil, ErrNotEnoughPlayers
			}
			view.Options = s.cfg.Sampler.Sample(sess.PlayerIDs, 2)
		case models.QuestionTypeRanking:
			view.Candidates = append([]string(nil), sess.PlayerIDs...)
		}

		views = append(views, view)
	}
	return views, nil
}

// onTimer runs a scheduled callback under the session lock. Failures have no
// caller to report to, so they are logged and the session is left as-is.
func (s *service) onTimer(code string, fn func(ctx context.Context, code string) error) {
	lock := s.sessionLock(code)
	lock.Lock()
	defer lock.Unlock()

	if err := fn(context.Background(), code); err != nil {
		s.log.WithError(err).WithField("code", code).Error("timer callback failed")
	}
}

// loadRound opens the next round, or finalizes the session once every round
// has been played.
func (s *service) loadRound(ctx context.Context, code string) error {
	sess, err := s.load(ctx, code)
	if err != nil {
		return err
	}
	if !sess.Active {
		return ErrSessionInactive
	}

	if sess.CurrentRound >= sess.Settings.RoundCount {
		if err := s.transition(sess, models.StateLeaderboard); err != nil {
			return err
		}
		if err := s.save(ctx, sess); err != nil {
			return err
		}
		s.log.WithField("code", code).Info("session finished")
		return nil
	}

	if err := s.transition(sess, models.StateQuiz); err != nil {
		return err
	}

	now := s.cfg.Clock.Now()
	sess.RoundDeadline = now.
		Add(time.Duration(sess.Settings.TimeLimitSeconds) * time.Second).
		Add(s.cfg.AnswerGrace)
	sess.AnsweredPlayerIDs = nil

	if err := s.save(ctx, sess); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"code":     code,
		"round":    sess.CurrentRound,
		"deadline": sess.RoundDeadline,
	}).Info("round opened")

	// Fire slightly early so scoring completes before client countdowns
	// reach zero.
	delay := sess.RoundDeadline.Sub(now) - s.cfg.EarlyFire
	s.cfg.Scheduler.Schedule(code, delay, func() {
		s.onTimer(code, s.resolveRound)
	})

	return nil
}

// RecordAnswer records one player's answer for the round in play
func (s *service) RecordAnswer(ctx context.Context, input *RecordAnswerInput) (*RecordAnswerOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &RecordAnswerOutput{Success: false, Message: err.Error()}, err
	}

	if sess.State != models.StateQuiz {
		return &RecordAnswerOutput{Success: false, Message: string(ErrNoRoundInProgress)}, ErrNoRoundInProgress
	}
	if !sess.HasPlayer(input.PlayerID) {
		return &RecordAnswerOutput{Success: false, Message: string(ErrPlayerNotInSession)}, ErrPlayerNotInSession
	}
	if sess.HasAnswered(input.PlayerID) {
		return &RecordAnswerOutput{Success: false, Message: string(ErrAlreadyAnswered)}, ErrAlreadyAnswered
	}

	view := sess.CurrentQuestion()
	if view == nil || view.ID != input.QuestionID {
		return &RecordAnswerOutput{Success: false, Message: string(ErrWrongQuestion)}, ErrWrongQuestion
	}

	answer := &models.Answer{
		PlayerID:   input.PlayerID,
		QuestionID: input.QuestionID,
		Value:      input.Value,
		Ranking:    input.Ranking,
		AnsweredAt: s.cfg.Clock.Now(),
	}
	sess.Answers[sess.CurrentRound] = append(sess.Answers[sess.CurrentRound], answer)
	sess.AnsweredPlayerIDs = append(sess.AnsweredPlayerIDs, input.PlayerID)

	// Every round runs its full timer even when all players have answered.
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	return &RecordAnswerOutput{Success: true}, nil
}

// resolveRound scores the round in play. The state check makes a second
// invocation (natural expiry racing a forced end) a no-op.
func (s *service) resolveRound(ctx context.Context, code string) error {
	sess, err := s.load(ctx, code)
	if err != nil {
		return err
	}

	if sess.State != models.StateQuiz {
		return nil
	}

	s.cfg.Scheduler.Cancel(code)

	// A duplicate advance can push the round index past the last question
	// while the session is still in quiz. There is nothing left to score.
	view := sess.CurrentQuestion()
	if view == nil {
		s.log.WithFields(logrus.Fields{
			"code":  code,
			"round": sess.CurrentRound,
		}).Warn("no question for round in play, skipping resolution")
		return nil
	}

	// Pad the answer list so every current player has exactly one entry.
	for _, playerID := range sess.PlayerIDs {
		if sess.HasAnswered(playerID) {
			continue
		}
		sess.Answers[sess.CurrentRound] = append(sess.Answers[sess.CurrentRound], &models.Answer{
			PlayerID:   playerID,
			QuestionID: view.ID,
			Value:      models.AnswerNotAnswered,
		})
	}

	// Signal "scoring in progress" before results are ready.
	if err := s.transition(sess, models.StateWaiting); err != nil {
		return err
	}
	if err := s.save(ctx, sess); err != nil {
		return err
	}

	question, err := s.cfg.QuestionBank.GetQuestion(ctx, &questionbankRepo.GetQuestionInput{
		QuestionID: view.ID,
	})
	if err != nil {
		return err
	}

	out, err := scoring.Score(&scoring.Input{
		Question:   question,
		View:       view,
		Answers:    sess.Answers[sess.CurrentRound],
		Multiplier: sess.Settings.PunishmentMultiplier,
	})
	if err != nil {
		return err
	}

	sess.Answers[sess.CurrentRound] = out.Answers
	sess.Punishments[sess.CurrentRound] = out.Punishments
	if len(out.FinalRanking) > 0 {
		view.FinalRanking = out.FinalRanking
	}
	sess.Leaderboard = leaderboard.Fold(sess.Leaderboard, out.Answers)

	if err := s.transition(sess, models.StateResults); err != nil {
		return err
	}
	if err := s.save(ctx, sess); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"code":  code,
		"round": sess.CurrentRound,
	}).Info("round resolved")

	return nil
}

// AdvanceRound moves the session from results into the next round. There is
// deliberately no guard against rapid duplicate calls; the transition check
// in loadRound rejects the second quiz entry but the index increment has
// already been persisted.
func (s *service) AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &AdvanceRoundOutput{Success: false, Message: err.Error()}, err
	}

	if !sess.Active {
		return &AdvanceRoundOutput{Success: false, Message: string(ErrSessionInactive)}, ErrSessionInactive
	}
	if sess.CreatorID != input.PlayerID {
		return &AdvanceRoundOutput{Success: false, Message: string(ErrNotCreator)}, ErrNotCreator
	}

	sess.CurrentRound++
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.loadRound(ctx, input.Code); err != nil {
		return &AdvanceRoundOutput{Success: false, Message: err.Error()}, err
	}

	finished := sess.CurrentRound >= sess.Settings.RoundCount
	return &AdvanceRoundOutput{
		Success:  true,
		Finished: finished,
	}, nil
}

// EndRound force-resolves the round in play before its deadline
func (s *service) EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	lock := s.sessionLock(input.Code)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &EndRoundOutput{Success: false, Message: err.Error()}, err
	}

	if sess.CreatorID != input.PlayerID {
		return &EndRoundOutput{Success: false, Message: string(ErrNotCreator)}, ErrNotCreator
	}
	if sess.State != models.StateQuiz {
		return &EndRoundOutput{Success: false, Message: string(ErrNoRoundInProgress)}, ErrNoRoundInProgress
	}

	if err := s.resolveRound(ctx, input.Code); err != nil {
		return &EndRoundOutput{Success: false, Message: err.Error()}, err
	}

	return &EndRoundOutput{Success: true}, nil
}

// GetSession retrieves the current session document
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	sess, err := s.load(ctx, input.Code)
	if err != nil {
		return &GetSessionOutput{Success: false, Message: err.Error()}, err
	}

	return &GetSessionOutput{
		Success: true,
		Session: sess,
	}, nil
}
