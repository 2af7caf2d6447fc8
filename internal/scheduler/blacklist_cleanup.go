package scheduler

import (
	"context"
	"fmt"
	"time"

	"app/internal/repository"
)

// mainから注入するログの約束（echo.Loggerで満たせる）
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// BlacklistCleanupは毎日決まった時刻に期限切れのブラックリスト行を削除する。
// 削除しなくても認可判定は壊れない（期限はトークン側でも検証される）ので、
// 純粋なストレージ掃除として動く。
type BlacklistCleanup struct {
	blacklist repository.BlacklistRepository
	hour      int
	minute    int
	logger    Logger
}

// atは"HH:MM"形式（例 "00:00"）。
func NewBlacklistCleanup(blacklist repository.BlacklistRepository, at string, logger Logger) (*BlacklistCleanup, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(at, "%d:%d", &hour, &minute); err != nil {
		return nil, fmt.Errorf("invalid cleanup time %q: %w", at, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid cleanup time %q", at)
	}

	return &BlacklistCleanup{
		blacklist: blacklist,
		hour:      hour,
		minute:    minute,
		logger:    logger,
	}, nil
}

// Runはctxが止まるまで毎日1回掃除を実行し続ける。
func (s *BlacklistCleanup) Run(ctx context.Context) {
	for {
		next := s.nextRunAfter(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnceは期限切れの行を削除する。何度呼んでも安全。
func (s *BlacklistCleanup) RunOnce(ctx context.Context) {
	count, err := s.blacklist.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Errorf("blacklist cleanup failed: %v", err)
		return
	}

	s.logger.Infof("blacklist cleanup removed %d expired tokens", count)
}

// nowより後の、設定時刻の次の発火時刻を返す。
func (s *BlacklistCleanup) nextRunAfter(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
