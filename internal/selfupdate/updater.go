package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput selects what to update to. An empty TargetVersion means
// the latest published release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is emitted once per stage of the update pipeline.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release build for this platform, verifies it
// against the published checksums, and swaps the running executable.
// A failed stage aborts with the binary on disk untouched.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag, err := c.resolveTag(ctx, input, progress)
	if err != nil {
		return err
	}

	a, err := c.releaseAsset(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.fetch(ctx, c.releaseFileURL(tag, a.name))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetch(ctx, c.releaseFileURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, err := checksumFor(sums, a.name)
	if err != nil {
		return err
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	binary, err := a.extract(archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := installBinary(binary, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

func (c *Checker) resolveTag(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (string, error) {
	if input.TargetVersion != "" {
		return input.TargetVersion, nil
	}
	progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
	result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return result.LatestVersion, nil
}

// asset describes the release artifact for one platform: the archive
// goreleaser publishes and the executable inside it.
type asset struct {
	name   string
	binary string
	zipped bool
}

// releaseAsset derives the published asset for a platform from the
// repository name, following the goreleaser name_template convention.
func (c *Checker) releaseAsset(goos, goarch string) (asset, error) {
	archNames := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}

	// Darwin ships a single universal archive for all architectures.
	if goos == "darwin" {
		return asset{
			name:   fmt.Sprintf("%s_Darwin_all.tar.gz", c.repo),
			binary: c.repo,
		}, nil
	}

	arch, ok := archNames[goarch]
	if !ok {
		return asset{}, fmt.Errorf("no release build for %s/%s", goos, goarch)
	}

	switch goos {
	case "linux":
		return asset{
			name:   fmt.Sprintf("%s_Linux_%s.tar.gz", c.repo, arch),
			binary: c.repo,
		}, nil
	case "windows":
		return asset{
			name:   fmt.Sprintf("%s_Windows_%s.zip", c.repo, arch),
			binary: c.repo + ".exe",
			zipped: true,
		}, nil
	default:
		return asset{}, fmt.Errorf("no release build for %s", goos)
	}
}

func (a asset) extract(archive []byte) ([]byte, error) {
	if a.zipped {
		return unzipOne(archive, a.binary)
	}
	return untarOne(archive, a.binary)
}

func (c *Checker) releaseFileURL(tag, name string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// checksumFor finds the published sha256 for name in a goreleaser
// checksums.txt body. Lines that are not "<hex>  <file>" are skipped.
func checksumFor(sums []byte, name string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == name {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("%s has no entry in checksums.txt", name)
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

func untarOne(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in release archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != name {
			continue
		}
		return io.ReadAll(tr)
	}
}

func unzipOne(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		return data, err
	}
	return nil, fmt.Errorf("%s not found in release archive", name)
}

// installBinary swaps the executable at target for data. The new binary
// is staged next to the target so the final rename stays on one
// filesystem, and re-hashed after writing to catch corruption in the
// staging window. The target's file mode survives the swap.
func installBinary(data []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staging, err := os.MkdirTemp(filepath.Dir(target), ".update-staging-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	staged := filepath.Join(staging, filepath.Base(target))
	if err := os.WriteFile(staged, data, 0600); err != nil {
		return fmt.Errorf("stage binary: %w", err)
	}

	onDisk, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("re-read staged binary: %w", err)
	}
	if sha256.Sum256(onDisk) != sha256.Sum256(data) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if err := os.Chmod(target, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return nil
}
