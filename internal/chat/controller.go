// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/deepchat-tui/internal/api"
	"github.com/jeranaias/deepchat-tui/internal/model"
)

// ErrBusy is returned by Send while a previous turn is still streaming.
// Callers treat it as a no-op rather than surfacing it to the user.
var ErrBusy = errors.New("a turn is already streaming")

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives the turn lifecycle for one conversation: it owns the
// message transcript, creates the backend thread lazily on first send,
// streams events through the reducer into the assistant placeholder, and
// supports cooperative cancellation of the in-flight turn.
//
// Send blocks until the turn finishes; the UI layer runs it inside a
// command goroutine and repaints on the notify hook.
type Controller struct {
	client  *api.Client
	reducer *Reducer
	now     func() time.Time

	// notify is invoked after every applied event and at turn end so the
	// UI can repaint. May be nil.
	notify func()

	// mu guards the transcript and turn state. Every reducer fold and
	// every mutation of a transcript message happens under it, so
	// Messages can hand out consistent snapshots.
	mu            sync.Mutex
	threadID      string
	messages      []*model.Message
	busy          bool
	attaching     bool
	cancelTurn    context.CancelFunc
	userCancelled bool

	// agent and skill are the sticky selections applied to sends that do
	// not carry a slash-command override.
	agent string
	skill string
}

// NewController creates a controller for the given API client.
func NewController(client *api.Client) *Controller {
	return &Controller{
		client:  client,
		reducer: NewReducer(),
		now:     time.Now,
	}
}

// SetClock replaces the controller's (and reducer's) clock.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
	c.reducer = NewReducerWithClock(now)
}

// SetNotify registers the repaint hook.
func (c *Controller) SetNotify(fn func()) {
	c.notify = fn
}

// SetAgent sets the sticky agent selection ("" means server default).
func (c *Controller) SetAgent(agent string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agent = agent
}

// SetSkill sets the sticky skill selection ("" means none).
func (c *Controller) SetSkill(skill string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skill = skill
}

// Agent returns the sticky agent selection.
func (c *Controller) Agent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}

// =============================================================================
// TRANSCRIPT ACCESS
// =============================================================================

// Messages returns a deep-copied snapshot of the transcript. The
// snapshot is consistent (no fold is half-applied) and safe to read
// while the in-flight turn keeps streaming into the live messages.
func (c *Controller) Messages() []*model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]*model.Message, len(c.messages))
	for i, m := range c.messages {
		msgs[i] = m.Clone()
	}
	return msgs
}

// ThreadID returns the backend thread id, or "" before the first send.
func (c *Controller) ThreadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threadID
}

// Busy reports whether a turn is currently streaming.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// =============================================================================
// SEND
// =============================================================================

// Send runs one complete turn: append the user message and an assistant
// placeholder, create the thread if this conversation does not have one
// yet, then stream events into the placeholder until done.
//
// A blank input with no attachments is a no-op. While a turn is already
// streaming Send returns ErrBusy without touching the transcript.
//
// Transport and server errors are appended to the placeholder as an
// inline error marker and also returned; a user cancellation leaves the
// partial content exactly as received, with no marker and a nil return.
func (c *Controller) Send(ctx context.Context, input string, files []model.FileAttachment) error {
	text := strings.TrimSpace(input)
	if text == "" && len(files) == 0 {
		return nil
	}

	agent := ""
	if cmdAgent, rest, ok := ParseCommand(text); ok {
		agent = cmdAgent
		text = rest
	}

	c.mu.Lock()
	if c.busy || c.attaching {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.userCancelled = false
	if agent == "" {
		agent = c.agent
	}
	skill := c.skill

	turnCtx, cancel := context.WithCancel(ctx)
	c.cancelTurn = cancel

	userMsg := model.NewUserMessage(text, files)
	assistant := model.NewAssistantMessage(c.now())
	c.messages = append(c.messages, userMsg, assistant)
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		c.busy = false
		c.cancelTurn = nil
		assistant.IsStreaming = false
		c.reducer.finishThinking(assistant)
		c.mu.Unlock()
		c.repaint()
	}()
	c.repaint()

	threadID, err := c.ensureThread(turnCtx)
	if err != nil {
		c.appendError(assistant, err)
		return err
	}

	fileIDs := make([]string, 0, len(files))
	for _, f := range files {
		fileIDs = append(fileIDs, f.FileID)
	}

	err = c.client.StreamChat(turnCtx, api.ChatRequest{
		ThreadID: threadID,
		Message:  text,
		Agent:    agent,
		Skill:    skill,
		FileIDs:  fileIDs,
	}, func(ev api.Event) {
		c.mu.Lock()
		c.reducer.Apply(assistant, ev)
		c.mu.Unlock()
		c.repaint()
	})
	if err != nil {
		if errors.Is(err, context.Canceled) && c.wasUserCancelled() {
			// Stopped on purpose: keep the partial answer, no marker.
			return nil
		}
		c.appendError(assistant, err)
		return err
	}
	return nil
}

// appendError records an inline error marker on a live transcript
// message under the transcript lock.
func (c *Controller) appendError(msg *model.Message, err error) {
	c.mu.Lock()
	msg.AppendError(err.Error())
	c.mu.Unlock()
}

// Cancel aborts the in-flight turn, if any. The partial assistant
// content received so far stays in the transcript.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelTurn != nil {
		c.userCancelled = true
		c.cancelTurn()
	}
}

func (c *Controller) wasUserCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userCancelled
}

// ensureThread returns the conversation's thread id, creating one on the
// backend the first time a message is sent.
func (c *Controller) ensureThread(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.threadID
	c.mu.Unlock()
	if id != "" {
		return id, nil
	}

	id, err := c.client.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.threadID = id
	c.mu.Unlock()
	return id, nil
}

func (c *Controller) repaint() {
	if c.notify != nil {
		c.notify()
	}
}

// =============================================================================
// THREAD MANAGEMENT
// =============================================================================

// StartNewThread clears the transcript and detaches from the current
// backend thread. The next Send creates a fresh thread lazily. No-op
// while a turn is streaming.
func (c *Controller) StartNewThread() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || c.attaching {
		return
	}
	c.messages = nil
	c.threadID = ""
}

// AttachThread switches the controller to an existing backend thread and
// replaces the transcript with the thread's persisted history. History
// turns carry role and content only. Send returns ErrBusy while the
// history fetch is in flight, so a turn can never interleave with the
// transcript replacement.
func (c *Controller) AttachThread(ctx context.Context, threadID string) error {
	c.mu.Lock()
	if c.busy || c.attaching {
		c.mu.Unlock()
		return ErrBusy
	}
	c.attaching = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.attaching = false
		c.mu.Unlock()
	}()

	turns, err := c.client.ThreadHistory(ctx, threadID)
	if err != nil {
		return err
	}

	msgs := make([]*model.Message, 0, len(turns))
	for _, turn := range turns {
		role := model.RoleUser
		if turn.Role == "assistant" {
			role = model.RoleAssistant
		}
		msgs = append(msgs, model.NewHistoryMessage(role, turn.Content))
	}

	c.mu.Lock()
	c.threadID = threadID
	c.messages = msgs
	c.mu.Unlock()
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// ParseCommand interprets a leading "/name" token as an agent override
// for this message: "/research find papers" routes "find papers" to the
// research agent. Returns ok=false for inputs that are not commands,
// including a bare "/".
func ParseCommand(input string) (agent, rest string, ok bool) {
	if !strings.HasPrefix(input, "/") {
		return "", input, false
	}
	token, remainder, _ := strings.Cut(input[1:], " ")
	if token == "" {
		return "", input, false
	}
	return token, strings.TrimSpace(remainder), true
}
