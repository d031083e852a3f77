package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	apperrors "meetflow/internal/app/errors"
)

// Episode is recording metadata scraped from a public episode page.
type Episode struct {
	Title    string
	Show     string
	AudioURL string
}

var audioExtensions = []string{".mp3", ".m4a", ".wav", ".ogg", ".flac"}

// EpisodeInfo scrapes the Open Graph metadata of the page: og:audio for the
// recording URL, og:title for its name.
func EpisodeInfo(ctx context.Context, pageURL string) (*Episode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, "building request for %s", pageURL)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, "fetching %s", pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf("fetching %s: unexpected status %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.Wrapf(err, "parsing %s", pageURL)
	}

	audioURL, _ := doc.Find(`meta[property="og:audio"]`).First().Attr("content")
	title, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
	show, _ := doc.Find(`meta[property="og:site_name"]`).First().Attr("content")

	if audioURL == "" || title == "" {
		return nil, apperrors.Newf("page %s has no og:audio or og:title metadata", pageURL)
	}

	return &Episode{Title: title, Show: show, AudioURL: audioURL}, nil
}

// AudioExtension returns the recognized audio extension of the URL, query
// string ignored, or "".
func AudioExtension(audioURL string) string {
	trimmed := audioURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	ext := strings.ToLower(filepath.Ext(trimmed))
	for _, known := range audioExtensions {
		if ext == known {
			return ext
		}
	}
	return ""
}

// ValidFileName flattens path separators out of a scraped title.
func ValidFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "-")
	return strings.TrimSpace(name)
}

// DownloadEpisode fetches the episode audio into dir and returns the local
// path. An existing file with the remote's size is reused.
func DownloadEpisode(ctx context.Context, episode *Episode, dir string, showProgress bool) (string, error) {
	ext := AudioExtension(episode.AudioURL)
	if ext == "" {
		return "", apperrors.Newf("cannot determine audio extension for %s", episode.AudioURL)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.FileAccess(err, dir)
	}
	path := filepath.Join(dir, ValidFileName(episode.Title)+ext)

	if size := remoteSize(ctx, episode.AudioURL); size > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() == size {
			return path, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, episode.AudioURL, nil)
	if err != nil {
		return "", apperrors.Wrapf(err, "building request for %s", episode.AudioURL)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", apperrors.Wrapf(err, "downloading %s", episode.AudioURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Newf("downloading %s: unexpected status %s", episode.AudioURL, resp.Status)
	}

	partPath := path + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return "", apperrors.FileAccess(err, partPath)
	}

	var body io.Reader = resp.Body
	var progress *mpb.Progress
	if showProgress {
		progress = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		name := filepath.Base(path)
		bar := progress.AddBar(resp.ContentLength,
			mpb.PrependDecorators(
				decor.Name(name+" ", decor.WC{W: len(name) + 1, C: decor.DindentRight}),
				decor.CountersKibiByte("% .2f / % .2f"),
			),
			mpb.AppendDecorators(
				decor.NewPercentage("%d", decor.WCSyncSpace),
				decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " done"),
			),
		)
		reader := bar.ProxyReader(resp.Body)
		defer reader.Close()
		body = reader
	}

	_, copyErr := io.Copy(out, body)
	closeErr := out.Close()
	if progress != nil {
		progress.Wait()
	}
	if copyErr != nil {
		os.Remove(partPath)
		return "", apperrors.Wrapf(copyErr, "downloading %s", episode.AudioURL)
	}
	if closeErr != nil {
		os.Remove(partPath)
		return "", apperrors.FileAccess(closeErr, partPath)
	}

	if err := os.Rename(partPath, path); err != nil {
		os.Remove(partPath)
		return "", apperrors.FileAccess(err, path)
	}
	return path, nil
}

func remoteSize(ctx context.Context, audioURL string) int64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, audioURL, nil)
	if err != nil {
		return -1
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return -1
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return -1
	}
	return resp.ContentLength
}
