// Package archive assembles the container build context: every aspect's
// Dockerfile snippets merged into one priority-ordered recipe, plus any
// extra files the aspects embed, streamed as a single tar archive.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"guibox/internal/aspects"
	"guibox/internal/errdefs"
)

// DockerfileName is the recipe entry synthesized at the end of the
// archive.
const DockerfileName = "Dockerfile"

// Recipe builds the final Dockerfile text from all aspects. Snippets
// sharing an order are concatenated with a newline in aspect registration
// order; the final text joins orders ascending, each chunk followed by a
// blank line.
func Recipe(list []aspects.ContainerAspect) string {
	chunks := map[int]string{}
	var orders []int
	for _, a := range list {
		for _, snippet := range a.DockerfileSnippets() {
			if existing, ok := chunks[snippet.Order]; ok {
				chunks[snippet.Order] = existing + "\n" + snippet.Content
				continue
			}
			chunks[snippet.Order] = snippet.Content
			orders = append(orders, snippet.Order)
		}
	}
	sort.Ints(orders)

	var b strings.Builder
	for _, order := range orders {
		b.WriteString(chunks[order])
		b.WriteString("\n\n")
	}
	return b.String()
}

// Write streams the build context for the given aspects to w. Aspect
// files are written in list order; the synthesized Dockerfile is always
// the final entry. Content is fully materialized before archiving so each
// header carries an exact size.
func Write(w io.Writer, list []aspects.ContainerAspect) error {
	tw := tar.NewWriter(w)

	for _, a := range list {
		for _, file := range a.ContainerFiles() {
			if err := addFile(tw, file.Path, file.Contents); err != nil {
				return err
			}
		}
	}

	if err := addFile(tw, DockerfileName, Recipe(list)); err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrArchiveWrite, err)
	}
	return nil
}

func addFile(tw *tar.Writer, name, contents string) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(contents)),
		ModTime: time.Unix(0, 0),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("%w: %s: %v", errdefs.ErrArchiveWrite, name, err)
	}
	if _, err := io.WriteString(tw, contents); err != nil {
		return fmt.Errorf("%w: %s: %v", errdefs.ErrArchiveWrite, name, err)
	}
	return nil
}
