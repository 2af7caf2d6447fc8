package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: BlacklistRepository
// =====================

type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) Add(ctx context.Context, token string, expiredAt time.Time) error {
	args := m.Called(ctx, token, expiredAt)
	return args.Error(0)
}

func (m *MockBlacklistRepository) IsBlacklisted(ctx context.Context, token string, now time.Time) (bool, error) {
	args := m.Called(ctx, token, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// ログは数だけ見る
type nopLogger struct {
	infos  int
	errors int
}

func (l *nopLogger) Infof(format string, args ...interface{})  { l.infos++ }
func (l *nopLogger) Errorf(format string, args ...interface{}) { l.errors++ }

func TestNewBlacklistCleanup_InvalidTime(t *testing.T) {
	bl := new(MockBlacklistRepository)

	_, err := NewBlacklistCleanup(bl, "midnight", &nopLogger{})
	assert.Error(t, err)

	_, err = NewBlacklistCleanup(bl, "25:00", &nopLogger{})
	assert.Error(t, err)

	_, err = NewBlacklistCleanup(bl, "12:75", &nopLogger{})
	assert.Error(t, err)
}

func TestBlacklistCleanup_RunOnce(t *testing.T) {
	bl := new(MockBlacklistRepository)
	logger := &nopLogger{}

	s, err := NewBlacklistCleanup(bl, "00:00", logger)
	require.NoError(t, err)

	bl.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	s.RunOnce(context.Background())

	bl.AssertExpectations(t)
	assert.Equal(t, 1, logger.infos)
}

// 掃除は何度走っても安全（削除対象が無ければ0件で終わるだけ）
func TestBlacklistCleanup_RunOnce_Idempotent(t *testing.T) {
	bl := new(MockBlacklistRepository)
	logger := &nopLogger{}

	s, err := NewBlacklistCleanup(bl, "00:00", logger)
	require.NoError(t, err)

	bl.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()
	bl.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 3, logger.infos)
	assert.Equal(t, 0, logger.errors)
}

func TestBlacklistCleanup_RunOnce_Error(t *testing.T) {
	bl := new(MockBlacklistRepository)
	logger := &nopLogger{}

	s, err := NewBlacklistCleanup(bl, "00:00", logger)
	require.NoError(t, err)

	bl.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), errors.New("db down"))

	s.RunOnce(context.Background())

	assert.Equal(t, 1, logger.errors)
	assert.Equal(t, 0, logger.infos)
}

func TestBlacklistCleanup_NextRunAfter(t *testing.T) {
	bl := new(MockBlacklistRepository)

	s, err := NewBlacklistCleanup(bl, "03:30", &nopLogger{})
	require.NoError(t, err)

	loc := time.UTC

	//設定時刻より前なら当日
	now := time.Date(2024, 5, 1, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 5, 1, 3, 30, 0, 0, loc), s.nextRunAfter(now))

	//設定時刻ちょうど・以降なら翌日
	now = time.Date(2024, 5, 1, 3, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 30, 0, 0, loc), s.nextRunAfter(now))

	now = time.Date(2024, 5, 1, 23, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 30, 0, 0, loc), s.nextRunAfter(now))
}

func TestBlacklistCleanup_Run_StopsOnCancel(t *testing.T) {
	bl := new(MockBlacklistRepository)

	s, err := NewBlacklistCleanup(bl, "00:00", &nopLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}

	//待機中に止めたので掃除は走っていない
	bl.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
}
