package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/model"
	"meetflow/internal/app/repository"
	"meetflow/internal/app/transcriber"
)

type fakeTranscriber struct {
	result *model.TranscriptionResult
	err    error

	path    string
	content []byte
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, req transcriber.Request) (*model.TranscriptionResult, error) {
	f.path = req.InputFilePath
	f.content, _ = os.ReadFile(req.InputFilePath)
	if f.err != nil {
		return nil, f.err
	}
	result := *f.result
	if req.ModelSize != "" {
		result.ModelSize = req.ModelSize
	}
	return &result, nil
}

type stubAnalyzer struct {
	result *model.AnalysisResult
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	result := *s.result
	return &result, nil
}

type memRepo struct {
	saved   []model.Meeting
	saveErr error
}

func (m *memRepo) Close() error { return nil }

func (m *memRepo) Save(ctx context.Context, meeting *model.Meeting) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *meeting)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	for i := range m.saved {
		if m.saved[i].ID == id {
			return &m.saved[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memRepo) List(ctx context.Context, limit, offset int) ([]model.Meeting, error) {
	return m.saved, nil
}

func (m *memRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]model.Meeting, error) {
	var out []model.Meeting
	for _, meeting := range m.saved {
		if meeting.Status == status {
			out = append(out, meeting)
		}
	}
	return out, nil
}

func (m *memRepo) FindByHash(ctx context.Context, audioHash string) (*model.Meeting, error) {
	for i := range m.saved {
		if m.saved[i].AudioHash == audioHash {
			return &m.saved[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, meeting := range m.saved {
		counts[meeting.Status]++
	}
	return counts, nil
}

type fakeArchiver struct {
	meetings []string
	err      error
}

func (f *fakeArchiver) ArchiveMeeting(ctx context.Context, meeting *model.Meeting, audioPath string) error {
	if f.err != nil {
		return f.err
	}
	f.meetings = append(f.meetings, meeting.ID)
	return nil
}

func goodTranscription() *model.TranscriptionResult {
	return &model.TranscriptionResult{
		Segments: []model.Segment{
			{ID: 0, Start: 0, End: 3 * time.Second, Text: "Hello, this is a test"},
		},
		Text:      "Hello, this is a test",
		Language:  "en",
		Duration:  3 * time.Second,
		ModelSize: "base",
	}
}

func goodAnalysis() *model.AnalysisResult {
	return &model.AnalysisResult{
		Summary:     "Quick test recording.",
		ActionItems: []model.ActionItem{{Task: "Verify the pipeline", Owner: model.OwnerUnassigned}},
		Model:       "llama-3.1-8b-instant",
	}
}

func TestProcessUploadHappyPath(t *testing.T) {
	trans := &fakeTranscriber{result: goodTranscription()}
	anal := &stubAnalyzer{result: goodAnalysis()}
	repo := &memRepo{}
	runner := NewRunner(trans, anal, repo, nil)

	meeting, err := runner.ProcessUpload(context.Background(), Upload{
		FileName: "standup.mp3",
		Reader:   strings.NewReader("fake-mp3-bytes"),
		Title:    "Standup",
	})
	require.NoError(t, err)

	assert.Equal(t, "Standup", meeting.Title)
	assert.Equal(t, "standup.mp3", meeting.SourceFile)
	assert.Equal(t, "Hello, this is a test", meeting.Transcript)
	assert.Equal(t, "Quick test recording.", meeting.Summary)
	assert.Equal(t, "llama-3.1-8b-instant", meeting.AnalysisModel)
	assert.Equal(t, model.StatusCompleted, meeting.Status)
	assert.Empty(t, meeting.ErrorDetail)
	assert.NotEmpty(t, meeting.ID)
	assert.InDelta(t, 3.0, meeting.DurationSec, 0.001)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, meeting.ID, repo.saved[0].ID)

	// The upload was spooled next to other temp files, with its extension.
	assert.True(t, strings.HasPrefix(filepath.Base(trans.path), "meetflow-"))
	assert.True(t, strings.HasSuffix(trans.path, ".mp3"))
	assert.Equal(t, "fake-mp3-bytes", string(trans.content))

	_, statErr := os.Stat(trans.path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed after the run")
}

func TestProcessUploadDefaultsExtension(t *testing.T) {
	trans := &fakeTranscriber{result: goodTranscription()}
	runner := NewRunner(trans, &stubAnalyzer{result: goodAnalysis()}, nil, nil)

	_, err := runner.ProcessUpload(context.Background(), Upload{
		FileName: "recording-without-extension",
		Reader:   strings.NewReader("bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(trans.path, ".mp3"), "got %s", trans.path)
}

func TestProcessUploadRejectsUnknownFormat(t *testing.T) {
	trans := &fakeTranscriber{result: goodTranscription()}
	runner := NewRunner(trans, &stubAnalyzer{result: goodAnalysis()}, nil, nil)

	_, err := runner.ProcessUpload(context.Background(), Upload{
		FileName: "talk.flac",
		Reader:   strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat), "got %v", err)
	assert.Empty(t, trans.path, "transcriber must not run for rejected uploads")
}

func TestProcessUploadCleansUpWhenTranscriptionFails(t *testing.T) {
	trans := &fakeTranscriber{err: apperrors.ModelLoad(errors.New("weights corrupt"), "base")}
	repo := &memRepo{}
	runner := NewRunner(trans, &stubAnalyzer{result: goodAnalysis()}, repo, nil)

	_, err := runner.ProcessUpload(context.Background(), Upload{
		FileName: "standup.mp3",
		Reader:   strings.NewReader("bytes"),
		Title:    "Standup",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrModelLoad), "got %v", err)

	_, statErr := os.Stat(trans.path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed on failure")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, model.StatusFailed, repo.saved[0].Status)
	assert.Contains(t, repo.saved[0].ErrorDetail, "weights corrupt")
}

func TestProcessUploadKeepsTranscriptWhenAnalysisFails(t *testing.T) {
	trans := &fakeTranscriber{result: goodTranscription()}
	anal := &stubAnalyzer{err: apperrors.AnalysisUnavailable(errors.New("all candidates down"))}
	repo := &memRepo{}
	runner := NewRunner(trans, anal, repo, nil)

	meeting, err := runner.ProcessUpload(context.Background(), Upload{
		FileName: "standup.mp3",
		Reader:   strings.NewReader("bytes"),
	})
	require.NoError(t, err, "a lost analysis is not a lost run")

	assert.Equal(t, model.StatusTranscriptOnly, meeting.Status)
	assert.Equal(t, "Hello, this is a test", meeting.Transcript)
	assert.Empty(t, meeting.Summary)
	assert.Contains(t, meeting.ErrorDetail, "analysis unavailable")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, model.StatusTranscriptOnly, repo.saved[0].Status)

	_, statErr := os.Stat(trans.path)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed after the run")
}

func TestProcessFileLeavesSourceInPlace(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "board_review.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	trans := &fakeTranscriber{result: goodTranscription()}
	runner := NewRunner(trans, &stubAnalyzer{result: goodAnalysis()}, nil, nil)

	meeting, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	require.NoError(t, err)

	assert.Equal(t, "board_review", meeting.Title, "title defaults to the file name")
	assert.Equal(t, "board_review.mp3", meeting.SourceFile)
	assert.NotEmpty(t, meeting.AudioHash)

	_, statErr := os.Stat(audioPath)
	assert.NoError(t, statErr, "caller-owned files are not deleted")
}

func TestProcessFileSkipsAlreadyProcessed(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "recurring.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	trans := &fakeTranscriber{result: goodTranscription()}
	repo := &memRepo{}
	runner := NewRunner(trans, &stubAnalyzer{result: goodAnalysis()}, repo, nil)

	first, err := runner.ProcessFile(context.Background(), audioPath, Options{SkipProcessed: true})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	trans.path = ""
	second, err := runner.ProcessFile(context.Background(), audioPath, Options{SkipProcessed: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyProcessed), "got %v", err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID, "the stored meeting rides along with the error")
	assert.Empty(t, trans.path, "transcriber must not run for skipped files")
	assert.Len(t, repo.saved, 1, "no duplicate row")

	// Without the flag the same file is processed again.
	third, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Len(t, repo.saved, 2)
}

func TestProcessFileSkipAnalysis(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "notes.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	anal := &stubAnalyzer{result: goodAnalysis()}
	runner := NewRunner(&fakeTranscriber{result: goodTranscription()}, anal, nil, nil)

	meeting, err := runner.ProcessFile(context.Background(), audioPath, Options{SkipAnalysis: true})
	require.NoError(t, err)

	assert.Equal(t, 0, anal.calls)
	assert.Equal(t, model.StatusTranscriptOnly, meeting.Status)
	assert.Empty(t, meeting.ErrorDetail)
}

func TestProcessFileEmptyTranscriptSkipsAnalysis(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "silence.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	silent := goodTranscription()
	silent.Text = ""
	silent.Segments = nil
	anal := &stubAnalyzer{result: goodAnalysis()}
	runner := NewRunner(&fakeTranscriber{result: silent}, anal, nil, nil)

	meeting, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, anal.calls)
	assert.Equal(t, model.StatusTranscriptOnly, meeting.Status)
	assert.Equal(t, "no speech detected", meeting.ErrorDetail)
}

func TestProcessFileDegradedAnalysis(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "sync.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	degraded := &model.AnalysisResult{
		Summary:  "raw prose from the model",
		Model:    "mixtral-8x7b-32768",
		Degraded: true,
	}
	runner := NewRunner(&fakeTranscriber{result: goodTranscription()}, &stubAnalyzer{result: degraded}, nil, nil)

	meeting, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, meeting.Status)
	assert.Equal(t, "raw prose from the model", meeting.Summary)
	assert.Empty(t, meeting.ActionItems)
	assert.NotEmpty(t, meeting.ErrorDetail)
}

func TestProcessFileReturnsMeetingOnSaveFailure(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "sync.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	repo := &memRepo{saveErr: errors.New("disk full")}
	runner := NewRunner(&fakeTranscriber{result: goodTranscription()}, &stubAnalyzer{result: goodAnalysis()}, repo, nil)

	meeting, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	require.Error(t, err)
	require.NotNil(t, meeting, "transcript survives a failed save")
	assert.Equal(t, "Hello, this is a test", meeting.Transcript)
}

func TestProcessFileArchiverFailureIsNotFatal(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "sync.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	archive := &fakeArchiver{err: errors.New("bucket offline")}
	runner := NewRunner(&fakeTranscriber{result: goodTranscription()}, &stubAnalyzer{result: goodAnalysis()}, nil, archive)

	_, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	assert.NoError(t, err)
}

func TestProcessFileArchivesMeeting(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "sync.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0o644))

	archive := &fakeArchiver{}
	runner := NewRunner(&fakeTranscriber{result: goodTranscription()}, &stubAnalyzer{result: goodAnalysis()}, nil, archive)

	meeting, err := runner.ProcessFile(context.Background(), audioPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{meeting.ID}, archive.meetings)
}
