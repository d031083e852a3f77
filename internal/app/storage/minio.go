package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"meetflow/internal/app/model"
)

// Archive copies the source audio, transcript and analysis of finished
// meetings into an S3-compatible bucket.
type Archive struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// Config collects the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ConfigFromEnv reads the MINIO_* variables. An empty endpoint means
// archival is disabled.
func ConfigFromEnv() Config {
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "meetflow-meetings"
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin"
	}
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin"
	}
	return Config{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    bucket,
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}

// NewArchive creates the archive client. A zero-endpoint config returns
// (nil, nil): archival off.
func NewArchive(cfg Config) (*Archive, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Archive{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
	}, nil
}

// EnsureBucket creates the bucket when missing. Called once at startup.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// ArchiveMeeting uploads the audio, the transcript and, when present, the
// analysis for one meeting.
func (a *Archive) ArchiveMeeting(ctx context.Context, meeting *model.Meeting, audioPath string) error {
	audioKey := AudioKey(meeting)
	_, err := a.client.FPutObject(ctx, a.bucket, audioKey, audioPath, minio.PutObjectOptions{
		ContentType: contentTypeFor(audioPath),
		UserMetadata: map[string]string{
			"original-name": meeting.SourceFile,
			"meeting-id":    meeting.ID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload audio: %w", err)
	}

	transcript := strings.NewReader(meeting.Transcript)
	_, err = a.client.PutObject(ctx, a.bucket, TranscriptKey(meeting.ID), transcript, int64(len(meeting.Transcript)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"language":   meeting.Language,
			"meeting-id": meeting.ID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload transcript: %w", err)
	}

	if meeting.Summary == "" {
		return nil
	}

	analysis, err := json.Marshal(map[string]any{
		"summary":      meeting.Summary,
		"action_items": meeting.ActionItems,
		"model":        meeting.AnalysisModel,
	})
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	_, err = a.client.PutObject(ctx, a.bucket, AnalysisKey(meeting.ID), strings.NewReader(string(analysis)), int64(len(analysis)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload analysis: %w", err)
	}
	return nil
}

// PresignedAudioURL returns a time-limited download link for the archived
// audio.
func (a *Archive) PresignedAudioURL(ctx context.Context, meeting *model.Meeting, expiry time.Duration) (string, error) {
	presigned, err := a.client.PresignedGetObject(ctx, a.bucket, AudioKey(meeting), expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presigned.String(), nil
}

// ObjectURL returns the plain (unsigned) URL for a stored object.
func (a *Archive) ObjectURL(key string) string {
	protocol := "http"
	if a.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, a.endpoint, a.bucket, key)
}

// AudioKey is the bucket key of a meeting's source audio.
func AudioKey(meeting *model.Meeting) string {
	ext := strings.ToLower(filepath.Ext(meeting.SourceFile))
	if ext == "" {
		ext = ".mp3"
	}
	return fmt.Sprintf("meetings/%s/audio%s", meeting.ID, ext)
}

// TranscriptKey is the bucket key of a meeting's transcript.
func TranscriptKey(meetingID string) string {
	return fmt.Sprintf("meetings/%s/transcript.txt", meetingID)
}

// AnalysisKey is the bucket key of a meeting's analysis JSON.
func AnalysisKey(meetingID string) string {
	return fmt.Sprintf("meetings/%s/analysis.json", meetingID)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
