package services

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestTaskRunnerWaitsForCompletion(t *testing.T) {
	runner := NewTaskRunner()
	var done atomic.Bool

	runner.Go("work", func() error {
		done.Store(true)
		return nil
	})

	if err := runner.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !done.Load() {
		t.Error("Wait returned before the task finished")
	}
}

func TestTaskRunnerCollectsErrors(t *testing.T) {
	runner := NewTaskRunner()
	boom := errors.New("boom")

	runner.Go("ok", func() error { return nil })
	runner.Go("fails", func() error { return boom })

	err := runner.Wait()
	if !errors.Is(err, boom) {
		t.Fatalf("Wait = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "task fails") {
		t.Errorf("error missing task name: %v", err)
	}
}

func TestTaskRunnerRecoversPanics(t *testing.T) {
	runner := NewTaskRunner()
	runner.Go("panics", func() error { panic("kaboom") })

	err := runner.Wait()
	if err == nil {
		t.Fatal("expected error from panicking task")
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("error = %v", err)
	}
}
