// Package simplify implements the Staff Simplifier stage: it takes a
// single-voice score produced by remove.Remove and turns it into a
// clean single-staff part carrying the correct clef and title for its
// voice.
package simplify

import (
	"path/filepath"
	"strings"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// Simplify collapses s to a single part under the expected clef for
// name, and renames the work so the split file is identifiable on its
// own. originalTitle is the title to derive the new one from; when it
// is empty, base is used instead (the caller's input file basename,
// stripped of its extension) so the result never leaks an intermediate
// conversion path as a title.
func Simplify(s *score.Score, name voiceid.VoiceName, loc voiceid.VoiceLocation, originalTitle, base string) {
	if len(s.Parts) > 1 {
		s.Parts = s.Parts[:1]
	}

	part := s.Parts[0]
	part.SetClef(loc.ExpectedClef)
	part.Name = voiceid.DisplayName(name)

	title := originalTitle
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	}
	s.WorkTitle = title + " (" + voiceid.DisplayName(name) + ")"
	s.MovementTitle = s.WorkTitle
}
