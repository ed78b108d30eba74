package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"math"
	"os"
	"time"

	"livefeed/internal/feed"
	"livefeed/internal/logger"

	"github.com/tidwall/gjson"
)

// DefaultRescan is how often a follower rereads the file even without a
// change notification.
const DefaultRescan = time.Second

// Follower tails a file of JSON lines, one entry per line:
//
//	{"author":"coolfox","color":"#ff8800","text":"hi","ts":"2024-06-01T10:00:00Z"}
//
// Only text is required. ts may be RFC 3339 or unix seconds.
type Follower struct {
	path    string
	rescan  time.Duration
	clock   func() time.Time
	log     *logger.LogEntry
	offset  int64
	partial []byte
	skipped int
}

// NewFollower follows path from its beginning.
func NewFollower(path string) *Follower {
	return &Follower{path: path, rescan: DefaultRescan, clock: time.Now, log: logger.Named("follow")}
}

// Skipped counts lines that could not be decoded.
func (f *Follower) Skipped() int { return f.skipped }

// Run sends every existing line of the file, then each line appended later,
// until ctx ends. It closes out before returning.
func (f *Follower) Run(ctx context.Context, out chan<- feed.Entry) error {
	defer close(out)
	w, err := newWatcher(f.path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", f.path, err)
	}
	defer w.Close()

	ticker := time.NewTicker(f.rescan)
	defer ticker.Stop()
	for {
		entries, err := f.poll()
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := send(ctx, out, e); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ErrSourceClosed
		case <-w.Changes():
		case <-ticker.C:
		}
	}
}

// poll reads whatever was appended since the last call. A file that shrank
// is read again from the start.
func (f *Follower) poll() ([]feed.Entry, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.offset, f.partial = 0, nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.path, err)
	}
	if info.Size() < f.offset {
		f.log.WithField("path", f.path).Warn("file truncated, rereading")
		f.offset, f.partial = 0, nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", f.path, err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	f.offset += int64(len(data))

	data = append(f.partial, data...)
	cut := bytes.LastIndexByte(data, '\n')
	if cut < 0 {
		f.partial = data
		return nil, nil
	}
	f.partial = append([]byte(nil), data[cut+1:]...)

	var entries []feed.Entry
	for line := range bytes.SplitSeq(data[:cut], []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		e, ok := ParseLine(line, f.clock)
		if !ok {
			f.skipped++
			f.log.WithField("line", string(line)).Debug("skipping undecodable line")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ParseLine decodes one JSON line. Lines without a text field are rejected.
func ParseLine(line []byte, clock func() time.Time) (feed.Entry, bool) {
	if !gjson.ValidBytes(line) {
		return feed.Entry{}, false
	}
	res := gjson.ParseBytes(line)
	text := res.Get("text")
	if !text.Exists() {
		return feed.Entry{}, false
	}
	name := res.Get("author").String()
	if name == "" {
		name = "anonymous"
	}
	color, ok := feed.ParseColor(res.Get("color").String())
	if !ok {
		color = ColorFor(name)
	}
	return feed.Entry{
		Timestamp: timestamp(res.Get("ts"), clock),
		Author:    feed.Author{Name: name, Color: color},
		Text:      text.String(),
	}, true
}

func timestamp(ts gjson.Result, clock func() time.Time) time.Time {
	switch ts.Type {
	case gjson.Number:
		sec, frac := math.Modf(ts.Float())
		return time.Unix(int64(sec), int64(frac*1e9))
	case gjson.String:
		if t, err := time.Parse(time.RFC3339Nano, ts.Str); err == nil {
			return t
		}
	}
	return clock()
}

// ColorFor picks a stable palette color for a name.
func ColorFor(name string) feed.RGB {
	h := fnv.New32a()
	h.Write([]byte(name))
	return feed.Palette[h.Sum32()%uint32(len(feed.Palette))]
}
