package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/internal/utils"
)

const expectedSingleMessagePrompt = `You are an assistant that drafts polished email replies on behalf of the user.

Objectives:
- Reply to the LAST email in the conversation.
- Be clear, helpful, and professional.
- Address all explicit questions and requests in the latest message.

Tone:
Use a neutral, professional tone.

Writing guidelines:
- Start with an appropriate greeting (e.g., "Hi Alice,").
- Briefly acknowledge the latest email.
- Then provide a clear and structured response.
- If some concrete detail is missing (e.g., a date, file name, link),
  use a short placeholder like [date], [link], or [file name] dont add date on your own if not sure.
- Do NOT invent facts, promises, discounts, or dates that are not supported by the thread.
- Do NOT repeat or quote the entire thread.
- Do NOT include a subject line.
- Do NOT include headers like "From:", "To:", or "Subject:" in your reply.

Think carefully about the conversation before responding.
Your final output must be only the email body the user will send.


Original email (single message):
Hello, can you send the report?

Task:
Write the reply email body as the recipient of this email.
Output only the email body, nothing else.
`

func TestBuildPrompt_SingleMessageExactText(t *testing.T) {
	request := dto.GenerateReplyRequest{
		EmailContent: utils.StringPtr("Hello, can you send the report?"),
	}

	assert.Equal(t, expectedSingleMessagePrompt, BuildPrompt(request))
}

func TestBuildPrompt_ToneSelection(t *testing.T) {
	tests := []struct {
		name string
		tone *string
		want string
	}{
		{name: "absent", tone: nil, want: "Use a neutral, professional tone.\n"},
		{name: "blank", tone: utils.StringPtr("  "), want: "Use a neutral, professional tone.\n"},
		{name: "formal", tone: utils.StringPtr("formal"), want: formalToneInstruction},
		{name: "formal upper case", tone: utils.StringPtr("FORMAL"), want: formalToneInstruction},
		{name: "friendly", tone: utils.StringPtr("Friendly"), want: friendlyToneInstruction},
		{name: "concise", tone: utils.StringPtr("concise"), want: conciseToneInstruction},
		{name: "unknown", tone: utils.StringPtr("pirate"), want: "Use a professional tone that matches the context of the thread.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(dto.GenerateReplyRequest{Tone: tt.tone})
			assert.Contains(t, prompt, "Tone:\n"+tt.want+"\n")
		})
	}
}

func TestBuildPrompt_ToneBlocksAreExclusive(t *testing.T) {
	prompt := BuildPrompt(dto.GenerateReplyRequest{Tone: utils.StringPtr("concise")})

	assert.Contains(t, prompt, "- Focus on the key points only\n")
	assert.NotContains(t, prompt, "Use a neutral, professional tone.")
	assert.NotContains(t, prompt, "Use a formal and professional tone.")
	assert.NotContains(t, prompt, "Use a warm, friendly, yet professional tone.")
}

func TestBuildPrompt_ThreadDelimitersInOrder(t *testing.T) {
	messages := make([]dto.EmailMessage, 0, 4)
	for i := 1; i <= 4; i++ {
		messages = append(messages, dto.EmailMessage{Body: utils.StringPtr(fmt.Sprintf("body %d", i))})
	}

	prompt := BuildPrompt(dto.GenerateReplyRequest{Messages: messages})

	assert.Equal(t, 4, strings.Count(prompt, "---- Message "))
	last := -1
	for i := 1; i <= 4; i++ {
		idx := strings.Index(prompt, fmt.Sprintf("---- Message %d ----\nBody:\nbody %d\n\n", i, i))
		require.GreaterOrEqual(t, idx, 0, "message %d missing", i)
		assert.Greater(t, idx, last)
		last = idx
	}
	assert.True(t, strings.HasSuffix(prompt, threadTask))
	assert.Contains(t, prompt, "Email thread (oldest first):\n---- Message 1 ----\n")
	assert.NotContains(t, prompt, "Original email (single message):")
}

func TestBuildPrompt_OmitsBlankSenderAndRecipient(t *testing.T) {
	prompt := BuildPrompt(dto.GenerateReplyRequest{
		Messages: []dto.EmailMessage{
			{Sender: utils.StringPtr("a@x.com"), Recipient: utils.StringPtr("b@x.com"), Body: utils.StringPtr("first")},
			{Sender: nil, Recipient: utils.StringPtr(" "), Body: utils.StringPtr("second")},
			{Sender: utils.StringPtr(""), Recipient: utils.StringPtr("c@x.com"), Body: nil},
		},
	})

	assert.Contains(t, prompt, "---- Message 1 ----\nFrom: a@x.com\nTo: b@x.com\nBody:\nfirst\n\n")
	assert.Contains(t, prompt, "---- Message 2 ----\nBody:\nsecond\n\n")
	assert.Contains(t, prompt, "---- Message 3 ----\nTo: c@x.com\nBody:\n\n\n")
	assert.Equal(t, 1, strings.Count(prompt, "From: "))
	assert.Equal(t, 2, strings.Count(prompt, "To: "))
}

func TestBuildPrompt_SubjectLine(t *testing.T) {
	withSubject := BuildPrompt(dto.GenerateReplyRequest{Subject: utils.StringPtr("Meeting")})
	assert.Contains(t, withSubject, "\n\n\nSubject of the email thread: Meeting\n\nOriginal email (single message):\n")

	blankSubject := BuildPrompt(dto.GenerateReplyRequest{Subject: utils.StringPtr("   ")})
	assert.NotContains(t, blankSubject, "Subject of the email thread:")
}

func TestBuildPrompt_LegacyBodyBranch(t *testing.T) {
	prompt := BuildPrompt(dto.GenerateReplyRequest{
		Messages:     []dto.EmailMessage{},
		EmailContent: utils.StringPtr("Please confirm the invoice."),
	})

	assert.Contains(t, prompt, "Original email (single message):\nPlease confirm the invoice.\n\n"+singleMessageTask)
	assert.NotContains(t, prompt, "---- Message")

	empty := BuildPrompt(dto.GenerateReplyRequest{})
	assert.Contains(t, empty, "Original email (single message):\n\n\n"+singleMessageTask)
}

func TestBuildPrompt_MessagesWinOverLegacyBody(t *testing.T) {
	prompt := BuildPrompt(dto.GenerateReplyRequest{
		Messages:     []dto.EmailMessage{{Body: utils.StringPtr("from the list")}},
		EmailContent: utils.StringPtr("legacy content"),
	})

	assert.Contains(t, prompt, "from the list")
	assert.NotContains(t, prompt, "legacy content")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	request := dto.GenerateReplyRequest{
		Subject: utils.StringPtr("Meeting"),
		Tone:    utils.StringPtr("friendly"),
		Messages: []dto.EmailMessage{
			{Sender: utils.StringPtr("a@x.com"), Recipient: utils.StringPtr("b@x.com"), Body: utils.StringPtr("Can we meet Tuesday?"), SentAt: utils.StringPtr("2025-01-01T10:00:00Z")},
		},
	}

	assert.Equal(t, BuildPrompt(request), BuildPrompt(request))
	assert.NotContains(t, BuildPrompt(request), "2025-01-01")
}

func TestBuildPrompt_PlaceholderGuidelineIsVerbatim(t *testing.T) {
	prompt := BuildPrompt(dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hi")})

	assert.Contains(t, prompt, "  use a short placeholder like [date], [link], or [file name] dont add date on your own if not sure.\n")
}
