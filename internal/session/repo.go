package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	errorspkg "storefront-console/internal/types/errors"
)

const keyPrefix = "console_session:"

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	baseDuration time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		baseDuration: baseDuration,
	}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (sessionRepository *SessionRepository) CreateSession(ctx context.Context) (*Session, error) {
	now := time.Now()

	session := &Session{
		ID:        uuid.New().String(),
		StartTime: now,
		EndTime:   now.Add(sessionRepository.baseDuration),
	}

	if err := sessionRepository.saveSessionToRedis(ctx, session, sessionRepository.baseDuration); err != nil {
		// Логируется внутри saveSessionToRedis
		return nil, err
	}

	sessionRepository.Logger.Infof("Console session %s created", session.ID)
	return session, nil
}

func (sessionRepository *SessionRepository) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := sessionRepository.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return nil, err // уже логируется внутри
	}

	if time.Now().After(session.EndTime) {
		_ = sessionRepository.RedisClient.Del(ctx, key(sessionID)).Err() // nolint:errcheck
		return nil, errorspkg.ErrSessionIsExpired
	}

	return session, nil
}

func (sessionRepository *SessionRepository) ExtendSession(
	ctx context.Context,
	sessionID string,
) error {
	session, err := sessionRepository.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		// Все логирование происходит внутри getSessionFromRedis
		return err
	}

	session.EndTime = time.Now().Add(sessionRepository.baseDuration)

	if err = sessionRepository.saveSessionToRedis(ctx, session, sessionRepository.baseDuration); err != nil {
		sessionRepository.Logger.Error(
			"Failed update session end time",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return err
	}

	return nil
}

func (sessionRepository *SessionRepository) SaveState(
	ctx context.Context,
	sessionID string,
	state json.RawMessage,
) error {
	session, err := sessionRepository.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return err
	}

	ttl := time.Until(session.EndTime)
	if ttl <= 0 {
		return errorspkg.ErrSessionIsExpired
	}

	session.State = state

	return sessionRepository.saveSessionToRedis(ctx, session, ttl)
}

func (sessionRepository *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := sessionRepository.RedisClient.Del(ctx, key(sessionID)).Err(); err != nil {
		sessionRepository.Logger.Error(
			"Failed delete session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return err
	}

	sessionRepository.Logger.Infof("Console session %s closed", sessionID)
	return nil
}

func (sessionRepository *SessionRepository) saveSessionToRedis(
	ctx context.Context,
	session *Session,
	ttl time.Duration,
) error {
	sessionDataJSON, err := json.Marshal(session)
	if err != nil {
		sessionRepository.Logger.Error(
			"Failed encode session to JSON",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)

		return err
	}

	err = sessionRepository.RedisClient.Set(ctx, key(session.ID), sessionDataJSON, ttl).Err()
	if err != nil {
		sessionRepository.Logger.Error(
			"Failed save session to Redis",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)

		return err
	}
	sessionRepository.Logger.Debug(
		fmt.Sprintf("Session %s saved to Redis successfully", session.ID),
	)

	return nil
}

func (sessionRepository *SessionRepository) getSessionFromRedis(
	ctx context.Context,
	sessionID string,
) (*Session, error) {
	sessionDataJSON, err := sessionRepository.RedisClient.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sessionRepository.Logger.Warnf("Session %s not found in Redis", sessionID)

			return nil, errorspkg.ErrSessionNotFound
		}

		sessionRepository.Logger.Error(
			"Failed get session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return nil, err
	}

	var session Session
	if err = json.Unmarshal(sessionDataJSON, &session); err != nil {
		sessionRepository.Logger.Error(
			"Failed decode session from JSON",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return nil, err
	}

	return &session, nil
}
