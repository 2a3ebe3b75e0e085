package main

import (
	"os"
	"reflect"
	"sync"
	"syscall"
	"testing"
	"time"
)

func Test_Repl_Cleanup_Runs_Once_In_Reverse(t *testing.T) {
	var cl cleanup
	var order []string
	cl.add(func() { order = append(order, "store") })
	cl.add(func() { order = append(order, "liner") })
	cl.add(func() { order = append(order, "history") })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cl.run()
		}()
	}
	wg.Wait()
	cl.run()

	want := []string{"history", "liner", "store"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("want %v, got %v", want, order)
	}
}

func Test_Repl_Signals_Interrupt_Then_Terminate(t *testing.T) {
	sigc := make(chan os.Signal)
	done := make(chan struct{})
	interrupts := make(chan struct{}, 4)
	terminated := make(chan struct{}, 1)
	exited := make(chan struct{})

	go func() {
		watchSignals(sigc, done,
			func() { interrupts <- struct{}{} },
			func() { terminated <- struct{}{} })
		close(exited)
	}()

	sigc <- os.Interrupt
	sigc <- os.Interrupt
	for i := 0; i < 2; i++ {
		select {
		case <-interrupts:
		case <-time.After(time.Second):
			t.Fatalf("interrupt %d not delivered", i)
		}
	}

	sigc <- syscall.SIGTERM
	select {
	case <-terminated:
	case <-time.After(time.Second):
		t.Fatalf("terminate not called")
	}
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatalf("watcher should stop after terminate")
	}
	close(done)
}

func Test_Repl_Signals_Stop_When_Done(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		watchSignals(sigc, done,
			func() { t.Errorf("unexpected interrupt") },
			func() { t.Errorf("unexpected terminate") })
		close(exited)
	}()

	close(done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatalf("watcher should stop once done is closed")
	}
}
