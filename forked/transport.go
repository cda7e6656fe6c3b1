package forked

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Transport is the abstraction over an OS child process from spec.md §2
// item 3: send a frame, subscribe to incoming frames/errors/exit, and
// kill the underlying process. The JSON-over-pipe encode/decode loop
// below is grounded on the teacher's cluster/transport.go connection
// (json.Encoder/Decoder over a net.Conn); here the "connection" is a
// subprocess's stdin/stdout pipe pair instead of a TCP socket.
type Transport interface {
	Send(f Frame) error
	OnMessage(cb func(Frame))
	OnError(cb func(err error))
	OnExit(cb func(err error))
	Kill() error
}

// pipeTransport is the shared implementation behind both the parent's
// view of a forked worker (ProcessTransport) and a worker's view of its
// parent (StdioTransport): a write side encoding frames, a read side
// decoding them, and three callback slots.
type pipeTransport struct {
	writeMu sync.Mutex
	enc     *json.Encoder
	closer  io.Closer
	killFn  func() error

	cbMu      sync.RWMutex
	onMessage func(Frame)
	onError   func(error)
	onExit    func(error)

	exitOnce sync.Once
}

func newPipeTransport(w io.Writer, closer io.Closer, killFn func() error) *pipeTransport {
	return &pipeTransport{
		enc:    json.NewEncoder(w),
		closer: closer,
		killFn: killFn,
	}
}

func (t *pipeTransport) Send(f Frame) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.enc.Encode(f)
}

func (t *pipeTransport) OnMessage(cb func(Frame)) {
	t.cbMu.Lock()
	t.onMessage = cb
	t.cbMu.Unlock()
}

func (t *pipeTransport) OnError(cb func(error)) {
	t.cbMu.Lock()
	t.onError = cb
	t.cbMu.Unlock()
}

func (t *pipeTransport) OnExit(cb func(error)) {
	t.cbMu.Lock()
	t.onExit = cb
	t.cbMu.Unlock()
}

func (t *pipeTransport) Kill() error {
	if t.killFn != nil {
		return t.killFn()
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

func (t *pipeTransport) fireMessage(f Frame) {
	t.cbMu.RLock()
	cb := t.onMessage
	t.cbMu.RUnlock()
	if cb != nil {
		cb(f)
	}
}

func (t *pipeTransport) fireError(err error) {
	t.cbMu.RLock()
	cb := t.onError
	t.cbMu.RUnlock()
	if cb != nil {
		cb(err)
	}
}

func (t *pipeTransport) fireExit(err error) {
	t.exitOnce.Do(func() {
		t.cbMu.RLock()
		cb := t.onExit
		t.cbMu.RUnlock()
		if cb != nil {
			cb(err)
		}
	})
}

// readLoop decodes frames from r until it errors or r is exhausted.
// FIFO of frames between the two endpoints (spec.md §4.3's ordering
// guarantee) falls directly out of decoding them off one stream in
// sequence.
func (t *pipeTransport) readLoop(r io.Reader) {
	dec := json.NewDecoder(bufio.NewReader(r))
	for {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			if err != io.EOF {
				t.fireError(err)
			}
			return
		}
		t.fireMessage(f)
	}
}

// ProcessTransport forks a worker executable and speaks the frame
// protocol over its stdin/stdout pipes.
type ProcessTransport struct {
	*pipeTransport
	cmd *exec.Cmd
}

// NewProcessTransport forks cmd (not yet started) and wires its pipes.
// cmd.Stderr is left to the caller to attach (typically the parent's own
// stderr, so a crashing worker's panic trace is visible).
func NewProcessTransport(cmd *exec.Cmd) (*ProcessTransport, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("forked: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("forked: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("forked: start worker: %w", err)
	}

	pt := &ProcessTransport{
		pipeTransport: newPipeTransport(stdin, stdin, func() error {
			if cmd.Process == nil {
				return nil
			}
			return cmd.Process.Kill()
		}),
		cmd: cmd,
	}

	go pt.readLoop(stdout)
	go func() {
		err := cmd.Wait()
		pt.fireExit(err)
	}()

	return pt, nil
}

// StdioTransport is a worker process's view of its parent: frames are
// read from r (typically os.Stdin) and written to w (typically
// os.Stdout). Kill closes the write side, which the parent observes as
// EOF on its read loop.
type StdioTransport struct {
	*pipeTransport
}

// NewStdioTransport wraps the worker's standard streams as a Transport.
func NewStdioTransport(r io.Reader, w io.WriteCloser) *StdioTransport {
	st := &StdioTransport{pipeTransport: newPipeTransport(w, w, w.Close)}
	go st.readLoop(r)
	return st
}
