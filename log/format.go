// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	ethlog "github.com/ethereum/go-ethereum/log"
)

const (
	termTimeFormat    = "01-02|15:04:05.000"
	termMsgJust       = 40
	termCtxMaxPadding = 40
)

var spaces = []byte(strings.Repeat(" ", termMsgJust))

func levelColor(l slog.Level) string {
	switch l {
	case LevelCrit:
		return "\x1b[35m"
	case LevelError:
		return "\x1b[31m"
	case LevelWarn:
		return "\x1b[33m"
	case LevelInfo:
		return "\x1b[32m"
	case LevelDebug:
		return "\x1b[36m"
	case LevelTrace:
		return "\x1b[34m"
	}
	return ""
}

func (h *TerminalHandler) format(buf []byte, r slog.Record, useColor bool) []byte {
	msg := escapeMessage(r.Message)
	color := ""
	if useColor {
		color = levelColor(r.Level)
	}
	b := bytes.NewBuffer(buf)

	if color != "" {
		b.WriteString(color)
		b.WriteString(ethlog.LevelAlignedString(r.Level))
		b.WriteString("\x1b[0m")
	} else {
		b.WriteString(ethlog.LevelAlignedString(r.Level))
	}
	b.WriteString("[")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")
	b.WriteString(msg)

	if r.NumAttrs()+len(h.attrs) > 0 && len(msg) < termMsgJust {
		b.Write(spaces[:termMsgJust-len(msg)])
	}
	h.formatAttributes(b, r, color)
	return b.Bytes()
}

func (h *TerminalHandler) formatAttributes(buf *bytes.Buffer, r slog.Record, color string) {
	n, total := 0, len(h.attrs)+r.NumAttrs()
	write := func(attr slog.Attr) {
		n++
		buf.WriteByte(' ')
		if color != "" {
			buf.WriteString(color)
			buf.WriteString(attr.Key)
			buf.WriteString("\x1b[0m=")
		} else {
			buf.WriteString(attr.Key)
			buf.WriteByte('=')
		}
		val := ethlog.FormatSlogValue(attr.Value, nil)

		padding := h.fieldPadding[attr.Key]
		length := utf8.RuneCount(val)
		if padding < length && length <= termCtxMaxPadding {
			padding = length
			h.fieldPadding[attr.Key] = padding
		}
		buf.Write(val)
		if n < total && padding > length {
			buf.Write(spaces[:padding-length])
		}
	}
	for _, attr := range h.attrs {
		write(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		write(attr)
		return true
	})
	buf.WriteByte('\n')
}

// escapeMessage quotes messages carrying control characters so a record stays on one line.
func escapeMessage(s string) string {
	for _, c := range s {
		if (c < ' ' && c != '\t') || c == 0x7f {
			return strconv.Quote(s)
		}
	}
	return s
}
