package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 測試兩邊算出的對話識別一致
func TestConversationKey_Symmetry(t *testing.T) {
	assert.Equal(t, ConversationKey("a", "b"), ConversationKey("b", "a"))
	assert.Equal(t, "a_b", ConversationKey("b", "a"))
}

// 測試對話 channel 兩邊一致
func TestConversationChannel_Symmetry(t *testing.T) {
	assert.Equal(t, ConversationChannel("m1", "m2"), ConversationChannel("m2", "m1"))
	assert.Equal(t, "portal:conv:m1_m2", ConversationChannel("m2", "m1"))
}

// 測試訊息輸入驗證
func TestSendMessage_Validate(t *testing.T) {
	mediaURL := "/media/abc"
	imageType := MediaImage
	badType := "audio"

	cases := []struct {
		name    string
		in      SendMessage
		wantErr bool
	}{
		{"content only", SendMessage{Content: "hi"}, false},
		{"media only", SendMessage{MediaURL: &mediaURL, MediaType: &imageType}, false},
		{"blank content no media", SendMessage{Content: "  "}, true},
		{"unsupported media type", SendMessage{Content: "hi", MediaType: &badType}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.Validate()
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
