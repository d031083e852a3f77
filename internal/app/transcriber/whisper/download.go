package whisper

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	apperrors "meetflow/internal/app/errors"
)

// Ensure makes the weights for size present in modelsDir, downloading them
// when missing, and returns the local path.
func Ensure(modelsDir, size string, showProgress bool) (string, error) {
	info, err := LookupModel(size)
	if err != nil {
		return "", err
	}

	path := info.localPathIn(modelsDir)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(modelsDir, 0o755); err != nil {
		return "", apperrors.FileAccess(err, modelsDir)
	}

	if err := downloadWeights(info, path, showProgress); err != nil {
		return "", err
	}
	return path, nil
}

func downloadWeights(info ModelInfo, path string, showProgress bool) error {
	resp, err := http.Get(info.URL)
	if err != nil {
		return apperrors.Wrapf(err, "downloading %s", info.FileName)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.Newf("downloading %s: unexpected status %s", info.FileName, resp.Status)
	}

	partPath := path + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return apperrors.FileAccess(err, partPath)
	}

	var body io.Reader = resp.Body
	var progress *mpb.Progress
	if showProgress {
		progress = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar := progress.AddBar(resp.ContentLength,
			mpb.PrependDecorators(
				decor.Name(info.FileName+" ", decor.WC{W: len(info.FileName) + 1, C: decor.DindentRight}),
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
		return apperrors.Wrapf(copyErr, "downloading %s", info.FileName)
	}
	if closeErr != nil {
		os.Remove(partPath)
		return apperrors.FileAccess(closeErr, partPath)
	}

	if err := os.Rename(partPath, path); err != nil {
		os.Remove(partPath)
		return apperrors.FileAccess(err, path)
	}

	fmt.Printf("downloaded %s to %s\n", info.FileName, path)
	return nil
}
