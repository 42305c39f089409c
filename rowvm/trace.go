// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package rowvm

import (
	"log"
	"sync/atomic"

	"github.com/colddeck/rowvm/rowplan"
)

// trace gates the one place this package logs anything: Evaluator
// construction, not the per-row hot path, matching vm/log.go and
// vm/trace.go's rule that the interpreter itself never logs inside
// its inner loop.
var trace atomic.Bool

// SetTrace enables or disables logging of every plan an Evaluator is
// constructed for. Disabled by default; intended for diagnosing which
// compiled plan produced a given run, the way a session ID correlates
// log lines for one connection.
func SetTrace(enabled bool) {
	trace.Store(enabled)
}

func traceConstruct(p *rowplan.Plan) {
	if trace.Load() {
		log.Printf("rowvm: constructed evaluator for plan %s (%d ops, %d intermediates)", p.ID, len(p.Ops), p.MaxIntermediates)
	}
}
