// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package matcher

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ResolveBatch resolves every location with at most workers concurrent
// queries. Results are in input order. Only a cancelled context stops the
// batch early.
func (e *Engine) ResolveBatch(ctx context.Context, locations []string, opts Options, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(locations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Resolve(ctx, loc, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := 0
	for _, r := range results {
		if r.Found() {
			found++
		}
	}
	e.log.Info("batch resolved", "total", len(locations), "found", found, "workers", workers)
	return results, nil
}
