package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type KeyedLimiterSuite struct {
	suite.Suite
	limiter *keyedLimiter
}

func (s *KeyedLimiterSuite) SetupTest() {
	// one token per hour, so nothing refills during a test
	s.limiter = newKeyedLimiter(1.0/3600, 3)
}

func TestKeyedLimiterSuite(t *testing.T) {
	suite.Run(t, new(KeyedLimiterSuite))
}

func (s *KeyedLimiterSuite) TestBurstThenReject() {
	for i := 0; i < 3; i++ {
		s.True(s.limiter.allow("ip:1.2.3.4"), "request %d should pass", i+1)
	}
	s.False(s.limiter.allow("ip:1.2.3.4"))
}

func (s *KeyedLimiterSuite) TestKeysAreIndependent() {
	for i := 0; i < 3; i++ {
		s.Require().True(s.limiter.allow("user:a"))
	}
	s.False(s.limiter.allow("user:a"))
	s.True(s.limiter.allow("user:b"))
}

func (s *KeyedLimiterSuite) TestIdleKeysForgotten() {
	for i := 0; i < 3; i++ {
		s.limiter.allow("user:idle")
	}
	s.Require().False(s.limiter.allow("user:idle"))

	past := time.Now().Add(-2 * limiterIdleTTL)
	s.limiter.mu.Lock()
	s.limiter.entries["user:idle"].lastSeen = past
	s.limiter.lastGC = past
	s.limiter.mu.Unlock()

	s.True(s.limiter.allow("user:other"))
	s.limiter.mu.Lock()
	_, kept := s.limiter.entries["user:idle"]
	s.limiter.mu.Unlock()
	s.False(kept)

	s.True(s.limiter.allow("user:idle"), "a forgotten key starts with a full bucket")
}
