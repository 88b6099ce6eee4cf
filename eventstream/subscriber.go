/*
 * MIT License
 *
 * Copyright (c) 2022-2026 Tochemey
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package eventstream

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber defines the consumer side of the stream.
type Subscriber interface {
	// ID returns the subscriber unique identifier.
	ID() string
	// Active returns true when the subscriber has not been shut down.
	Active() bool
	// Topics returns the topics the subscriber is subscribed to.
	Topics() []string
	// Iterator drains the messages received so far. The returned channel is
	// closed once the backlog has been consumed.
	Iterator() <-chan *Message
	// Shutdown deactivates the subscriber and drops its backlog.
	Shutdown()

	subscribe(topic string)
	unsubscribe(topic string)
	push(msg *Message)
}

// subscriber is the default Subscriber implementation.
type subscriber struct {
	mu       sync.Mutex
	id       string
	active   bool
	topics   map[string]struct{}
	messages []*Message
}

var _ Subscriber = (*subscriber)(nil)

// newSubscriber creates an active subscriber with no topics.
func newSubscriber() *subscriber {
	return &subscriber{
		id:     uuid.NewString(),
		active: true,
		topics: make(map[string]struct{}),
	}
}

// ID returns the subscriber unique identifier.
func (s *subscriber) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Active returns true when the subscriber has not been shut down.
func (s *subscriber) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Topics returns the topics the subscriber is subscribed to.
func (s *subscriber) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	topics := make([]string, 0, len(s.topics))
	for topic := range s.topics {
		topics = append(topics, topic)
	}
	return topics
}

// Iterator drains the messages received so far.
func (s *subscriber) Iterator() <-chan *Message {
	s.mu.Lock()
	backlog := s.messages
	s.messages = nil
	s.mu.Unlock()

	out := make(chan *Message, len(backlog))
	for _, msg := range backlog {
		out <- msg
	}
	close(out)
	return out
}

// Shutdown deactivates the subscriber and drops its backlog.
func (s *subscriber) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.messages = nil
	s.topics = make(map[string]struct{})
}

func (s *subscriber) subscribe(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[topic] = struct{}{}
}

func (s *subscriber) unsubscribe(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.topics, topic)
}

func (s *subscriber) push(msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.messages = append(s.messages, msg)
}
