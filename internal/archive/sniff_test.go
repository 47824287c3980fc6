package archive

import "testing"

func TestSniffPlainSubtitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		blob    string
		wantExt string
		wantOK  bool
	}{
		{
			name:    "srt timecodes",
			blob:    "1\n00:00:01,000 --> 00:00:04,000\nHello\n",
			wantExt: ".srt",
			wantOK:  true,
		},
		{
			name:    "srt timecodes with dots",
			blob:    "1\n00:00:01.000 --> 00:00:04.000\nHello\n",
			wantExt: ".srt",
			wantOK:  true,
		},
		{
			name:    "substation alpha",
			blob:    "[Script Info]\nTitle: Something\n",
			wantExt: ".ass",
			wantOK:  true,
		},
		{
			name:    "microdvd frames",
			blob:    "{120}{240}Hello|World\n",
			wantExt: ".sub",
			wantOK:  true,
		},
		{
			name:   "text without timing structure",
			blob:   "just some dialogue lines\nwithout timecodes\n",
			wantOK: false,
		},
		{
			name:   "binary garbage",
			blob:   "\x01\x02binary garbage\xff\xfe",
			wantOK: false,
		},
		{
			name:   "html comment carrying a timecode arrow",
			blob:   "<!DOCTYPE html><body><!-- 00:00:01,000 --> 00:00:02,000 --></body>",
			wantOK: false,
		},
		{
			name:   "zip remnant",
			blob:   "PK\x03\x04leftover bytes",
			wantOK: false,
		},
		{
			name:   "rar remnant",
			blob:   "Rar!\x1a\x07leftover bytes",
			wantOK: false,
		},
		{
			name:   "doctype error page",
			blob:   "  <!DOCTYPE html><html><body>gone</body></html>",
			wantOK: false,
		},
		{
			name:   "php error dump",
			blob:   "<?php echo 'fatal'; ?>",
			wantOK: false,
		},
		{
			name:   "markup heavy fragment",
			blob:   "<div><span><b>not</b> a subtitle</span></div>",
			wantOK: false,
		},
		{
			name:    "timecodes with a few angle brackets",
			blob:    "1\n00:00:01,000 --> 00:00:04,000\n<i>Hello</i>\n",
			wantExt: ".srt",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ext, ok := sniffPlainSubtitle([]byte(tt.blob))
			if ok != tt.wantOK {
				t.Fatalf("sniffPlainSubtitle() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && ext != tt.wantExt {
				t.Errorf("sniffPlainSubtitle() ext = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestSelectMemberTiers(t *testing.T) {
	t.Parallel()

	names := []string{
		"Show.S01.Pack/Show.S01E01.srt",
		"Show.S01.Pack/Show.S01E02.srt",
		"Show.S01.Pack/notes.nfo",
	}

	got, ok := selectMember(names, &EpisodeHints{Season: 1, Episode: 2})
	if !ok || got != "Show.S01.Pack/Show.S01E02.srt" {
		t.Errorf("selectMember() = %q, %v; want the S01E02 member", got, ok)
	}

	// No exact episode falls back to season matches.
	got, ok = selectMember(names, &EpisodeHints{Season: 1, Episode: 9})
	if !ok || got == "" {
		t.Errorf("selectMember() = %q, %v; want a season member", got, ok)
	}

	// No subtitle members at all.
	if _, ok := selectMember([]string{"notes.nfo", "cover.jpg"}, nil); ok {
		t.Error("selectMember() found a member among non-subtitle files")
	}
}

func TestSelectMemberExtensionPriority(t *testing.T) {
	t.Parallel()

	got, ok := selectMember([]string{"movie.txt", "movie.ass", "movie.srt"}, nil)
	if !ok || got != "movie.srt" {
		t.Errorf("selectMember() = %q, %v; want movie.srt", got, ok)
	}
}
