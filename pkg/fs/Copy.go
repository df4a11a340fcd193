// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// Copy copies the contents of the source file to the destination, truncating any existing file,
// and then sets the modification time of the destination to input.ModTime if it is not zero.
// Returns the number of bytes written.
func Copy(ctx context.Context, input *CopyInput) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if input.Logger != nil {
		_ = input.Logger.Log("Copying file", map[string]interface{}{
			"src": input.SourceName,
			"dst": input.DestinationName,
		})
	}

	mode := input.Mode.Perm()
	if mode == 0 {
		mode = 0644
	}

	if input.Parents {
		parent := input.DestinationFileSystem.Dir(input.DestinationName)
		if err := input.DestinationFileSystem.MkdirAll(ctx, parent, 0755); err != nil {
			return 0, fmt.Errorf("error creating parent directory %q: %w", parent, err)
		}
	}

	// open source file
	sourceFile, err := input.SourceFileSystem.Open(ctx, input.SourceName)
	if err != nil {
		return 0, fmt.Errorf("error opening source file at %q: %w", input.SourceName, err)
	}

	// open destination file
	destinationFile, err := input.DestinationFileSystem.OpenFile(ctx, input.DestinationName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		_ = sourceFile.Close() // silently close source file
		return 0, fmt.Errorf("error creating destination file at %q: %w", input.DestinationName, err)
	}

	// copy bytes from source to destination
	written, err := io.Copy(destinationFile, sourceFile)
	if err != nil {
		_ = sourceFile.Close()      // silently close source file
		_ = destinationFile.Close() // silently close destination file
		return written, fmt.Errorf("error copying from %q to %q: %w", input.SourceName, input.DestinationName, err)
	}

	err = sourceFile.Close()
	if err != nil {
		_ = destinationFile.Close() // silently close destination file
		return written, fmt.Errorf("error closing source file after copying: %w", err)
	}

	err = destinationFile.Close()
	if err != nil {
		return written, fmt.Errorf("error closing destination file after copying: %w", err)
	}

	// preserve modification time
	if !input.ModTime.IsZero() {
		err = input.DestinationFileSystem.Chtimes(ctx, input.DestinationName, time.Now(), input.ModTime)
		if err != nil {
			return written, fmt.Errorf("error changing timestamps for %q after copying: %w", input.DestinationName, err)
		}
	}

	if input.Logger != nil {
		_ = input.Logger.Log("Done copying file", map[string]interface{}{
			"src":     input.SourceName,
			"dst":     input.DestinationName,
			"written": written,
		})
	}

	return written, nil
}
