/*
   Copyright 2021 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package flow

import (
	"context"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// diagnosticLogger is the optional structured-logging sink from spec §6
// ("Diagnostics... presented to a caller-supplied logger"), built on
// github.com/joeycumines/logiface with github.com/joeycumines/stumpy as
// the default backend, mirroring the wiring shown in
// logiface-stumpy/example_test.go.
type diagnosticLogger struct {
	log *logiface.Logger[*stumpy.Event]
}

// NewDiagnosticLogger builds the default stumpy-backed logger for use
// with WithLogger. Pass a *logiface.Logger[*stumpy.Event] built with
// custom stumpy.Option values via NewDiagnosticLoggerWith if a caller
// wants a different writer or field set.
func NewDiagnosticLogger() *diagnosticLogger {
	return &diagnosticLogger{log: stumpy.L.New()}
}

// NewDiagnosticLoggerWith wraps an already-configured logiface Logger,
// for callers that want their own stumpy.Option set (writer, field
// names) or an entirely different logiface backend implementing the
// same Event type.
func NewDiagnosticLoggerWith(log *logiface.Logger[*stumpy.Event]) *diagnosticLogger {
	return &diagnosticLogger{log: log}
}

func (d *diagnosticLogger) callbackPanicked(ctx context.Context, name string, err error) {
	if d == nil || d.log == nil {
		return
	}
	d.log.Err().Str("generator", name).Err(err).Log("callback panicked")
}

func (d *diagnosticLogger) firing(ctx context.Context, kind, name string) {
	if d == nil || d.log == nil {
		return
	}
	d.log.Debug().Str("kind", kind).Str("generator", name).Log("fired")
}

func (d *diagnosticLogger) fault(ctx context.Context, err error) {
	if d == nil || d.log == nil {
		return
	}
	d.log.Emerg().Err(err).Log("kernel fault")
}

func (d *diagnosticLogger) broken(ctx context.Context) {
	if d == nil || d.log == nil {
		return
	}
	d.log.Info().Log("kernel break requested, stopping")
}
