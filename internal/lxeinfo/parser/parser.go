// Package parser は抽出したデータをレポート用に解析します
package parser

import (
	"fmt"
	"strings"

	apperrors "github.com/shiroemons/go-pmlxzj/internal/lxeinfo/errors"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/models"
	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

// InfoParser はメタデータを人が読める形式に変換します
type InfoParser struct{}

// NewInfoParser は新しいInfoParserを作成します
func NewInfoParser() *InfoParser {
	return &InfoParser{}
}

// Parse はメタデータからレポート用の情報を生成します
func (p *InfoParser) Parse(data *models.ExtractedData) (*models.Info, error) {
	if data == nil || data.Metadata == nil {
		return nil, apperrors.NewParseError("metadata", apperrors.ErrParseFailure)
	}
	m := data.Metadata
	video := &m.Video

	info := &models.Info{
		Title:       orDefault(m.Title, "(null)"),
		Infotext:    orDefault(data.Infotext, "(null)"),
		Resolution:  fmt.Sprintf("%dx%d", m.Width, m.Height),
		Elapsed:     FormatElapsed(m.FramesCnt, video.FrameMs),
		LockState:   FormatLockState(data.Lock, m.Footer),
		Registered:  data.Registered,
		VideoOffset: fmt.Sprintf("0x%08x, type %d", m.VideoOffset, m.Player.VideoType),
		AudioOffset: "(no audio)",
		Keyframes:   formatSegment(m.Keyframes, "(no keyframes)"),
		Clicks:      formatSegment(m.Clicks, "(no clicks)"),
	}
	if m.AudioOffset >= 0 {
		info.AudioOffset = fmt.Sprintf("0x%08x, type %d (%s)", m.AudioOffset, m.Player.AudioType, lxe.AudioType(m.Player.AudioType))
	}
	if data.Infotext != "" {
		info.InfoStyle = formatInfoStyle(video, data.FontName)
	}

	return info, nil
}

// FormatElapsed は再生時間を "分:秒 (秒数 s, フレーム数 frames, FPS = n)" の形式で返します
func FormatElapsed(framesCnt, frameMs uint32) string {
	elapsed := float64(framesCnt) * float64(frameMs) / 1000
	minutes := int(elapsed / 60)
	seconds := elapsed - float64(60*minutes)

	fps := "-"
	if frameMs != 0 {
		fps = fmt.Sprintf("%.2f", 1000/float64(frameMs))
	}
	return fmt.Sprintf("%d:%04.1f (%.1f s, %d frames, FPS = %s)", minutes, seconds, elapsed, framesCnt, fps)
}

// FormatLockState はロック状態を文字列で返します
func FormatLockState(lock lxe.LockState, footer lxe.Footer) string {
	switch lock {
	case lxe.LockEdit:
		return fmt.Sprintf("Edit locked, key = %d", footer.EditlockKey)
	case lxe.LockPlay:
		return fmt.Sprintf("Play locked, password checksum = %d", footer.PlaylockCksum)
	default:
		return "Unlocked"
	}
}

func formatInfoStyle(video *lxe.Video, fontName string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "pos %d x %d, size %d, font %s, color #%06x",
		video.InfoX, video.InfoY, video.InfotextFontSize,
		orDefault(fontName, "(unspecified)"), video.InfotextFontColor)

	style := video.InfotextFontStyle
	for _, s := range []struct {
		on   uint8
		name string
	}{
		{style.Bold, "bold"},
		{style.Italic, "italic"},
		{style.Underline, "underline"},
		{style.StrikeOut, "strike out"},
	} {
		if s.on != 0 {
			builder.WriteString(", " + s.name)
		}
	}
	return builder.String()
}

func formatSegment(s *lxe.Segment, def string) string {
	if s == nil {
		return def
	}
	return fmt.Sprintf("0x%08x, size %d", s.Offset, s.Size)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
