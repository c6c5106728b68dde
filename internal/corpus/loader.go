package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emberfall/lorekeeper/internal/campaign"
	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
)

// FileError records a file that existed but could not be read.
type FileError struct {
	Path string
	Err  error
}

// Result is the outcome of loading a campaign corpus. Missing paths and
// per-file read errors are warnings attached to the result; they never abort
// a load that produced at least one document.
type Result struct {
	Documents  []Document
	Missing    []string
	FileErrors []FileError
}

// Partial reports whether the load skipped any expected path or file.
func (r Result) Partial() bool {
	return len(r.Missing) > 0 || len(r.FileErrors) > 0
}

// Load reads every markdown document named by the resolved campaign layout.
//
// Roles are visited in campaign.Roles order and files within a directory role
// in lexicographic path order, so two loads of an unchanged corpus hand the
// extractor the same document sequence. That ordering is what makes index
// merges reproducible.
//
// Load fails with EMPTY_CAMPAIGN only when no document at all could be read.
func Load(c campaign.Campaign) (Result, error) {
	var result Result

	for _, role := range campaign.Roles {
		path, ok := c.Paths[role]
		if !ok {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			result.Missing = append(result.Missing, path)
			continue
		}

		if info.IsDir() {
			files, err := markdownFiles(path)
			if err != nil {
				result.FileErrors = append(result.FileErrors, FileError{Path: path, Err: err})
				continue
			}
			for _, file := range files {
				loadFile(&result, c.ID, role, file)
			}
			continue
		}
		loadFile(&result, c.ID, role, path)
	}

	if len(result.Documents) == 0 {
		return Result{}, apperrors.WithMetadata(apperrors.CodeEmptyCampaign,
			fmt.Sprintf("campaign %q has no loadable documents", c.ID),
			map[string]string{"campaign_id": c.ID})
	}
	return result, nil
}

// loadFile reads one markdown file into the result, recording a FileError
// instead of failing when the read errors out.
func loadFile(result *Result, campaignID string, role campaign.Role, path string) {
	info, err := os.Stat(path)
	if err != nil {
		result.FileErrors = append(result.FileErrors, FileError{Path: path, Err: err})
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		result.FileErrors = append(result.FileErrors, FileError{Path: path, Err: err})
		return
	}
	result.Documents = append(result.Documents, Document{
		CampaignID: campaignID,
		Role:       role,
		Path:       path,
		Text:       string(raw),
		ModTime:    info.ModTime(),
	})
}

// markdownFiles walks a directory and returns every *.md file beneath it in
// lexicographic path order.
func markdownFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
