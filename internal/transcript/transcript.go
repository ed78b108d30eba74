// Package transcript 把收到的消息逐行写入会话记录文件。
package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"livefeed/internal/feed"
	"livefeed/internal/layout"
	"livefeed/internal/logger"

	"github.com/google/uuid"
)

// Transcript 是一次会话的记录文件。
type Transcript struct {
	log     *logger.LogEntry
	closer  io.Closer
	path    string
	session string
	clock   func() time.Time
	once    sync.Once
}

// Open 在 dir 下创建新的记录文件并写入会话开始行。clock 为 nil 时使用 time.Now。
func Open(dir string, clock func() time.Time) (*Transcript, error) {
	if clock == nil {
		clock = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}
	id := uuid.NewString()
	now := clock()
	name := fmt.Sprintf("%s_%s.log", now.Format("2006-01-02_15-04-05"), id[:8])
	entry, closer, path, err := logger.SetupComponentFile("transcript", filepath.Join(dir, name), logger.TranscriptFormatter{})
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	t := &Transcript{log: entry, closer: closer, path: path, session: id, clock: clock}
	t.log.Infof("*** session start %s %s", id, now.Format(time.RFC3339))
	return t, nil
}

// Write 追加一行 "HH:MM:SS author: text"。
func (t *Transcript) Write(e feed.Entry) {
	t.log.Infof("%s %s: %s", e.Clock(), layout.Sanitize(e.Author.Name), layout.Sanitize(e.Text))
}

// Close 写入会话结束行并关闭文件，可重复调用。
func (t *Transcript) Close() error {
	var err error
	t.once.Do(func() {
		t.log.Infof("*** session end %s %s", t.session, t.clock().Format(time.RFC3339))
		err = t.closer.Close()
	})
	return err
}

// Path 返回记录文件路径。
func (t *Transcript) Path() string { return t.path }

// Session 返回会话 ID。
func (t *Transcript) Session() string { return t.session }
