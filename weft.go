package weft

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/weftlang/weft/desc"
	"github.com/weftlang/weft/linker"
	"github.com/weftlang/weft/reporter"
)

// Linker links batches of weft schema files from a desc.FileSet into fully
// resolved results. Files are processed concurrently, each one strictly after
// all of its imports, so every file observes fully built, immutable
// registries for its dependencies.
type Linker struct {
	// The maximum parallelism to use when linking. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified, a default
	// reporter is used, which fails the whole operation on the first error
	// and ignores warnings.
	Reporter reporter.Reporter
}

// Link links the named files, and transitively everything they import, from
// the given set. The returned results are in the same order as paths.
//
// The import graph must be acyclic and closed over the set: a file importing
// a path with no corresponding file in the set is an error, as is any import
// cycle.
func (l *Linker) Link(ctx context.Context, set *desc.FileSet, paths ...string) (linker.Results, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	// Validate the graph up front so the concurrent phase below never waits
	// on a file that (transitively) waits on itself.
	checked := map[string]int{}
	for _, path := range paths {
		if err := checkImports(set, path, checked, nil); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := l.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	e := &executor{
		h:       reporter.NewHandler(l.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		set:     set,
		results: map[string]*result{},
	}

	results := make([]*result, len(paths))
	for i, path := range paths {
		results[i] = e.link(ctx, path)
	}

	linked := make(linker.Results, len(paths))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		linked[i] = r.res
	}
	return linked, nil
}

const (
	unvisited = iota
	visiting
	visited
)

// checkImports walks the import graph rooted at path, failing on missing
// files and on cycles. The stack holds the chain of paths being visited.
func checkImports(set *desc.FileSet, path string, state map[string]int, stack []string) error {
	switch state[path] {
	case visited:
		return nil
	case visiting:
		i := 0
		for ; stack[i] != path; i++ {
		}
		return fmt.Errorf("import cycle: %s -> %s", strings.Join(stack[i:], " -> "), path)
	}

	file := set.FileByPath(path)
	if file == nil {
		if len(stack) == 0 {
			return fmt.Errorf("file %q is not in the set", path)
		}
		return fmt.Errorf("file %q imports %q, which is not in the set", stack[len(stack)-1], path)
	}

	state[path] = visiting
	stack = append(stack, path)
	for _, imp := range file.Imports() {
		if err := checkImports(set, imp, state, stack); err != nil {
			return err
		}
	}
	state[path] = visited
	return nil
}

type result struct {
	ready chan struct{}
	res   *linker.Result
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(res *linker.Result) {
	r.res = res
	close(r.ready)
}

type executor struct {
	h   *reporter.Handler
	s   *semaphore.Weighted
	set *desc.FileSet

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) link(ctx context.Context, path string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r := e.results[path]; r != nil {
		return r
	}

	r := &result{ready: make(chan struct{})}
	e.results[path] = r
	go e.doLink(ctx, path, r)
	return r
}

func (e *executor) doLink(ctx context.Context, path string, r *result) {
	t := task{e: e}
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer t.release()

	res, err := t.link(ctx, e.set.FileByPath(path))
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(res)
}

// A linking task. The executor's semaphore limits the number of tasks that
// run at once.
type task struct {
	e *executor
	// Set while the task has given up its semaphore permit to wait for
	// dependencies.
	released bool
}

func (t *task) release() {
	if !t.released {
		t.e.s.Release(1)
		t.released = true
	}
}

func (t *task) link(ctx context.Context, file *desc.File) (*linker.Result, error) {
	var deps linker.Results
	if imports := file.Imports(); len(imports) > 0 {
		results := make([]*result, len(imports))
		for i, imp := range imports {
			results[i] = t.e.link(ctx, imp)
		}

		// Release our permit so dependency tasks can run without risk of
		// deadlock, then wait for all of them.
		t.e.s.Release(1)
		t.released = true

		deps = make(linker.Results, len(results))
		for i, res := range results {
			select {
			case <-res.ready:
				if res.err != nil {
					return nil, res.err
				}
				deps[i] = res.res
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := t.e.s.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		t.released = false
	}

	return linker.Link(t.e.set, file, deps, t.e.h)
}
