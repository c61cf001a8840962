package unit

import (
	"testing"
	"time"

	"alumni_portal_service/internal/member/domain"
	"alumni_portal_service/pkg/encrypt"

	"github.com/stretchr/testify/assert"
)

func TestMemberPasswordMatch(t *testing.T) {
	hashed, err := encrypt.HashPassword("Passw0rd1")
	assert.NoError(t, err)

	member := domain.Member{
		ID:       1,
		Email:    "user@example.com",
		Password: hashed,
	}

	assert.True(t, member.IsPasswordMatch("Passw0rd1") == nil, "should match correct password")
	assert.False(t, member.IsPasswordMatch("WrongPass1") == nil, "should not match incorrect password")
}

func TestMemberSessionExpiration(t *testing.T) {
	session := domain.MemberSession{
		Token:        "abcd1234",
		MemberID:     "1",
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		ExpiredAt:    time.Now().Add(-1 * time.Minute), // 已經過期
	}

	assert.True(t, session.IsExpired(), "session should be expired")
}
