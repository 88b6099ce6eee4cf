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

package actor

import "github.com/google/uuid"

// Address is the routing identity a handler subscribes to. It is owned by
// exactly one supervisor and compares by identity: two addresses are the
// same destination only when they are the same pointer.
//
// Every actor receives a primary address when it initializes; additional
// virtual addresses can be created on demand with Actor.NewAddress.
type Address struct {
	id         string
	supervisor *Supervisor
	owner      *Actor
}

// ID returns the address unique identifier.
func (x *Address) ID() string {
	return x.id
}

// Supervisor returns the supervisor owning the address.
func (x *Address) Supervisor() *Supervisor {
	return x.supervisor
}

// Owner returns the actor the address was created for.
func (x *Address) Owner() *Actor {
	return x.owner
}

// newAddress creates an address owned by the given supervisor.
func newAddress(supervisor *Supervisor, owner *Actor) *Address {
	return &Address{
		id:         uuid.NewString(),
		supervisor: supervisor,
		owner:      owner,
	}
}
