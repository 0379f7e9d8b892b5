package x11

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/jezek/xgb"
	"go.uber.org/zap"

	"xwinpong/internal/display"
)

// acceptThenHangUp answers the connection setup with a minimal success reply
// and closes the socket, as a server that dies mid-game would.
func acceptThenHangUp(conn net.Conn, failed chan<- error) {
	defer conn.Close()

	head := make([]byte, 12)
	if _, err := io.ReadFull(conn, head); err != nil {
		failed <- err
		return
	}
	pad := func(n uint16) int { return (int(n) + 3) &^ 3 }
	auth := make([]byte, pad(binary.LittleEndian.Uint16(head[6:]))+pad(binary.LittleEndian.Uint16(head[8:])))
	if _, err := io.ReadFull(conn, auth); err != nil {
		failed <- err
		return
	}

	reply := make([]byte, 40)
	reply[0] = 1
	binary.LittleEndian.PutUint16(reply[2:], 11)
	binary.LittleEndian.PutUint16(reply[6:], 8)
	binary.LittleEndian.PutUint32(reply[12:], 0x00200000)
	binary.LittleEndian.PutUint32(reply[16:], 0x001fffff)
	binary.LittleEndian.PutUint16(reply[26:], 0xffff)
	reply[34], reply[35] = 8, 255
	if _, err := conn.Write(reply); err != nil {
		failed <- err
		return
	}
	close(failed)
}

func TestPollNoticesLostConnection(t *testing.T) {
	t.Setenv("XAUTHORITY", filepath.Join(t.TempDir(), "none"))
	xgb.Logger = zap.NewStdLog(zap.NewNop())

	client, server := net.Pipe()
	failed := make(chan error, 1)
	go acceptThenHangUp(server, failed)

	conn, err := xgb.NewConnNet(client)
	if err != nil {
		t.Fatal(err)
	}
	if err := <-failed; err != nil {
		t.Fatal(err)
	}

	b := &Backend{conn: conn, log: zap.NewNop()}
	b.start()

	deadline := time.Now().Add(5 * time.Second)
	for b.Healthy() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server hung up but the backend still reports a healthy connection")
		}
		b.Poll()
		time.Sleep(10 * time.Millisecond)
	}

	var connErr *display.ConnError
	if err := b.Healthy(); !errors.As(err, &connErr) || !errors.Is(err, display.ErrClosed) {
		t.Fatalf("Healthy() = %v", err)
	}
	if _, ok := b.Poll(); ok {
		t.Fatal("Poll returned an event after the connection closed")
	}
	if _, err := b.Wait(); !errors.Is(err, display.ErrClosed) {
		t.Fatalf("Wait() err = %v", err)
	}
}
