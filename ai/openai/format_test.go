package openai

import (
	"testing"

	"github.com/poiesic/grantmatch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
)

func TestFormatReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "already formatted",
			reply: "<h3>Direct Answer</h3><p>Use AFG.</p>",
			want:  "<h3>Direct Answer</h3><p>Use AFG.</p>",
		},
		{
			name:  "plain paragraphs",
			reply: "AFG funds drones.\nApply in spring.",
			want:  "<p>AFG funds drones.</p><p>Apply in spring.</p>",
		},
		{
			name:  "numbered list",
			reply: "Options:\n1. AFG\n2. SAFER",
			want:  "<p>Options:</p><h3>Available Grant Options</h3><ol><li>AFG</li><li>SAFER</li></ol>",
		},
		{
			name:  "numbered and bulleted",
			reply: "1. AFG\n- fire departments\n• EMS",
			want:  "<h3>Available Grant Options</h3><ol><li>AFG</li><h3>Key Details</h3><ul><li>fire departments</li><li>EMS</li></ol></ul>",
		},
		{
			name:  "blank lines kept",
			reply: "1. AFG\n\nDone",
			want:  "<h3>Available Grant Options</h3><ol><li>AFG</li><p>Done</p></ol>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatReply(tt.reply))
		})
	}
}

func TestBuildMessages(t *testing.T) {
	history := []ai.Message{
		{Role: ai.RoleUser, Content: "Which grants fund drones?"},
		{Role: ai.RoleAssistant, Content: "<p>AFG.</p>"},
		{Role: ai.RoleUser, Content: "Deadline?"},
	}

	content := buildMessages(history)

	assert.Len(t, content, 4)
	assert.Equal(t, llms.ChatMessageTypeSystem, content[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, content[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, content[2].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, content[3].Role)
	assert.Equal(t, llms.TextContent{Text: "Deadline?"}, content[3].Parts[0])
}
