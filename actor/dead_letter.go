/*
 * MIT License
 *
 * Copyright (c) 2022-2024  Arsene Tochemey Gandote
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

import "reflect"

// deadLetterActor is the cell living at /deadletters: an ordinary actor
// so subscribers of the event stream's events topic are not the only
// way to observe undeliverable messages — anything can Watch or
// tell this path too.
type deadLetterActor struct {
	NoOpHooks
}

func newDeadLetterActor() Producer {
	return func() Actor { return &deadLetterActor{} }
}

func (d *deadLetterActor) Receive(ctx *ReceiveContext) {
	if letter, ok := ctx.Message().(*DeadLetter); ok {
		ctx.System().Logger().Warnf("dead letter: %s -> %s (%s)", letter.Sender, letter.RecipientPath, letter.MsgTypeID)
		return
	}
	ctx.Unhandled()
}

func msgTypeID(msg any) string {
	if msg == nil {
		return "nil"
	}
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
