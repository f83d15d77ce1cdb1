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

package log

// Level defines the supported logging severities, ordered from most to
// least verbose.
type Level int

const (
	// DebugLevel is the most verbose level, for development diagnostics.
	DebugLevel Level = iota
	// InfoLevel is for routine lifecycle and operational messages.
	InfoLevel
	// WarnLevel is for recoverable anomalies.
	WarnLevel
	// ErrorLevel is for failures that do not abort the process.
	ErrorLevel
	// FatalLevel logs then calls os.Exit(1).
	FatalLevel
	// PanicLevel logs then panics.
	PanicLevel

	numLevels
)

var names = [numLevels]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
	PanicLevel: "PANIC",
}

// String returns the human-readable name of the level.
func (l Level) String() string {
	if l < 0 || int(l) >= len(names) {
		return "UNKNOWN"
	}
	return names[l]
}
