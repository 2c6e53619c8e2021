package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/logging"
)

const stockINI = "; generated\r\n" +
	"item_Name_SHLD_TEST=C3B OldName\r\n" +
	"item_Desc_SHLD_TEST=Manufacturer: Gorgon\\nClass: Military\r\n" +
	"item_Name_POWR_OK=C1A JS-300\r\n" +
	"item_Desc_POWR_OK=Class: Civilian\r\n" +
	"item_Name_QDRV_PH=PLACEHOLDER\r\n"

type fixture struct {
	dir  string
	ini  string
	cfg  config.Config
	out  bytes.Buffer
	logs bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir()}

	records := filepath.Join(f.dir, "extracted", "foundry", "records", "entities", "scitem", "ships")
	writeRecord(t, filepath.Join(records, "shieldgenerator", "shld_test.xml"),
		`Type="Shield" Size="3" Grade="2"`, `@item_Name_SHLD_TEST`, `@item_Desc_SHLD_TEST`)
	writeRecord(t, filepath.Join(records, "powerplant", "powr_ok.xml"),
		`Type="PowerPlant" Size="1" Grade="A"`, `@item_Name_POWR_OK`, `@item_Desc_POWR_OK`)
	writeRecord(t, filepath.Join(records, "cooler", "cool_missing.xml"),
		`Type="Cooler" Size="2" Grade="C"`, `@item_Name_COOL_MISSING`, ``)
	writeRecord(t, filepath.Join(records, "quantumdrive", "qdrv_placeholder.xml"),
		`Type="QuantumDrive" Size="1" Grade="4"`, `@item_Name_QDRV_PH`, ``)
	touch(t, filepath.Join(records, "shieldgenerator", "shld_bad.xml"), `<Entity><Components/></Entity>`)

	f.ini = filepath.Join(f.dir, "4.4.0", "PTU", "data", "Localization", "english", "global.ini")
	touch(t, f.ini, stockINI)

	f.cfg = config.DefaultConfig()
	f.cfg.Paths.PackRoot = f.dir
	f.cfg.Paths.Extracted = filepath.Join(f.dir, "extracted")
	f.cfg.Paths.Report = filepath.Join(f.dir, "final_audit_report.txt")
	f.cfg.Display.Progress = false
	return f
}

func (f *fixture) logger() *logging.Logger { return logging.New(&f.logs, &f.logs, true) }

func writeRecord(t *testing.T, path, attach, name, desc string) {
	t.Helper()
	loc := `<Localization Name="` + name + `"`
	if desc != "" {
		loc += ` Description="` + desc + `"`
	}
	loc += `/>`
	touch(t, path, `<?xml version="1.0" encoding="utf-8"?>
<EntityClassDefinition>
  <Components>
    <SAttachableComponentParams>
      <AttachDef `+attach+`>
        `+loc+`
      </AttachDef>
    </SAttachableComponentParams>
  </Components>
</EntityClassDefinition>`)
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

var ignoreElapsed = cmpopts.IgnoreFields(RunStats{}, "Elapsed")

func TestRun(t *testing.T) {
	f := newFixture(t)
	install := filepath.Join(f.dir, "StarCitizen", "LIVE")
	require.NoError(t, os.MkdirAll(install, 0o755))
	f.cfg.Deploy.Enabled = true
	f.cfg.Deploy.InstallDir = install

	stats, err := Run(context.Background(), &f.cfg, f.logger(), &f.out)
	require.NoError(t, err)

	want := RunStats{
		Localization: f.ini,
		Scanned:      5,
		Components:   4,
		Rejected:     1,
		Correct:      1,
		Mismatched:   1,
		Missing:      1,
		Placeholders: 1,

		Changes:             1,
		SkippedPlaceholders: 1,
		NotFound:            1,
		Written:             true,
		Remaining:           1,

		Deployed: filepath.Join(install, "data", "Localization", "english", "global.ini"),
	}
	if diff := cmp.Diff(want, stats, ignoreElapsed); diff != "" {
		t.Errorf("RunStats mismatch (-want +got):\n%s", diff)
	}

	fixed := strings.Replace(stockINI, "C3B OldName", "M3B OldName", 1)
	assert.Equal(t, fixed, read(t, f.ini))
	assert.Equal(t, fixed, read(t, stats.Deployed))

	report := read(t, f.cfg.Paths.Report)
	assert.Equal(t, f.out.String(), report)
	assert.Contains(t, report, "AUDIT REPORT")
	assert.Contains(t, report, "Expected: M3B ...")
	assert.Contains(t, report, "@item_Name_COOL_MISSING -> C2C ...")

	logs := f.logs.String()
	assert.Contains(t, logs, "Updating item_Name_SHLD_TEST:")
	assert.Contains(t, logs, "[DEBUG]   skipped 1: no-attach-def")
}

func TestRun_DryRun(t *testing.T) {
	f := newFixture(t)
	f.cfg.Run.DryRun = true
	f.cfg.Deploy.Enabled = true
	f.cfg.Deploy.InstallDir = filepath.Join(f.dir, "nowhere")

	stats, err := Run(context.Background(), &f.cfg, f.logger(), &f.out)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Changes)
	assert.False(t, stats.Written)
	assert.Equal(t, 2, stats.Remaining)
	assert.Empty(t, stats.Deployed)
	assert.Equal(t, stockINI, read(t, f.ini))
	assert.Contains(t, f.logs.String(), "[DRY] Would save 1 update")
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &f.cfg, f.logger(), &f.out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, stockINI, read(t, f.ini))
}

func TestAudit_JSON(t *testing.T) {
	f := newFixture(t)
	f.cfg.Audit.Format = config.FormatJSON
	f.cfg.Paths.Report = ""

	stats, err := Audit(context.Background(), &f.cfg, f.logger(), &f.out)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Remaining)

	var got struct {
		Total      int `json:"total_components"`
		Mismatches []struct {
			Key      string `json:"key"`
			Expected string `json:"expected"`
			Actual   string `json:"actual"`
		} `json:"mismatches"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	assert.Equal(t, 4, got.Total)
	require.Len(t, got.Mismatches, 1)
	assert.Equal(t, "item_Name_SHLD_TEST", got.Mismatches[0].Key)
	assert.Equal(t, "M3B ...", got.Mismatches[0].Expected)
	assert.Equal(t, "C3B OldName", got.Mismatches[0].Actual)

	assert.NoFileExists(t, filepath.Join(f.dir, "final_audit_report.txt"))
	assert.Equal(t, stockINI, read(t, f.ini))
}

func TestFix_Idempotent(t *testing.T) {
	f := newFixture(t)

	first, err := Fix(context.Background(), &f.cfg, f.logger())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Changes)
	assert.True(t, first.Written)

	second, err := Fix(context.Background(), &f.cfg, f.logger())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Changes)
	assert.False(t, second.Written)
	assert.Equal(t, 1, second.Remaining)
}

func TestFix_SharedNameToken(t *testing.T) {
	f := newFixture(t)
	records := filepath.Join(f.dir, "extracted", "foundry", "records", "entities", "scitem", "ships")
	writeRecord(t, filepath.Join(records, "shieldgenerator", "shld_variant.xml"),
		`Type="Shield" Size="2" Grade="B"`, `@item_Name_SHLD_TEST`, `@item_Desc_SHLD_TEST`)

	first, err := Fix(context.Background(), &f.cfg, f.logger())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Changes)
	assert.Equal(t, 1, first.Conflicts)
	assert.Contains(t, read(t, f.ini), "item_Name_SHLD_TEST=M3B OldName")
	assert.Contains(t, f.logs.String(), "kept M3B, wanted M2B")

	second, err := Fix(context.Background(), &f.cfg, f.logger())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Changes)
	assert.Equal(t, 1, second.Conflicts)
	assert.False(t, second.Written)
}

func TestFatalInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture)
	}{
		{"missing record root", func(f *fixture) { f.cfg.Paths.Extracted = filepath.Join(f.dir, "absent") }},
		{"missing localization", func(f *fixture) { f.cfg.Paths.Localization = filepath.Join(f.dir, "absent.ini") }},
		{"no version folder", func(f *fixture) { f.cfg.Paths.PackRoot = filepath.Join(f.dir, "extracted") }},
		{"no channel folder", func(f *fixture) { f.cfg.Paths.Channels = []string{"EPTU"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f)
			_, err := Run(context.Background(), &f.cfg, f.logger(), &f.out)
			require.Error(t, err)
			assert.True(t, errors.IsFatalInput(err), "got %v", err)
			assert.Equal(t, stockINI, read(t, f.ini))
		})
	}
}

func TestLocalizationPath(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"4.3.2/LIVE", "4.4.0/PTU", "4.4.0/LIVE", "notes"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.FromSlash(d)), 0o755))
	}
	cfg := config.DefaultConfig()
	cfg.Paths.PackRoot = dir

	got, err := LocalizationPath(&cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "4.4.0", "LIVE", "data", "Localization", "english", "global.ini"), got)

	cfg.Paths.Channels = []string{"PTU", "LIVE"}
	got, err = LocalizationPath(&cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "4.4.0", "PTU", "data", "Localization", "english", "global.ini"), got)

	cfg.Paths.VersionConstraint = "< 4.4"
	got, err = LocalizationPath(&cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "4.3.2", "LIVE", "data", "Localization", "english", "global.ini"), got)

	cfg.Paths.Localization = "custom.ini"
	got, err = LocalizationPath(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "custom.ini", got)
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.ini")
	stockPath := filepath.Join(dir, "stock.ini")
	outPath := filepath.Join(dir, "4.4.0", "PTU", "global.ini")
	touch(t, oldPath, "a=remix\nb=x\nFrontend_PU_Version=4.3\nold_only=z\n")
	touch(t, stockPath, "\ufeffFrontend_PU_Version=4.4\na=stock\nnew=n\nb=x\n")

	cfg := config.DefaultConfig()
	var logs bytes.Buffer
	res, err := MergeFiles(&cfg, logging.New(&logs, &logs, false), oldPath, stockPath, outPath)
	require.NoError(t, err)

	assert.Equal(t, 1, res.KeptRemixed)
	assert.Equal(t, 1, res.KeptStock)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Forced)
	assert.Equal(t, []string{"old_only"}, res.Removed)
	assert.Equal(t,
		"\ufeffFrontend_PU_Version=4.4 - ScCompLangPackRemix\na=remix\nb=x\nnew=n\n",
		read(t, outPath))
	assert.Contains(t, logs.String(), "1 entries from old remix not in new stock")
}

func TestMergeFiles_DryRunAndMissing(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.ini")
	stockPath := filepath.Join(dir, "stock.ini")
	outPath := filepath.Join(dir, "out.ini")
	touch(t, oldPath, "a=1\n")

	cfg := config.DefaultConfig()
	log := logging.New(&bytes.Buffer{}, &bytes.Buffer{}, false)

	_, err := MergeFiles(&cfg, log, oldPath, stockPath, outPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInputNotFound))

	touch(t, stockPath, "a=2\n")
	cfg.Run.DryRun = true
	_, err = MergeFiles(&cfg, log, oldPath, stockPath, outPath)
	require.NoError(t, err)
	assert.NoFileExists(t, outPath)
}

func TestOverlayFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "global.ini")
	overlay := filepath.Join(dir, "target_strings.ini")
	touch(t, target, "; header\r\na=1\r\nb=2\r\n")
	touch(t, overlay, "b=two\nc=3\n")

	cfg := config.DefaultConfig()
	res, err := OverlayFile(&cfg, logging.New(&bytes.Buffer{}, &bytes.Buffer{}, false), target, overlay)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replaced)
	assert.Equal(t, 1, res.Appended)
	assert.Equal(t, "; header\r\na=1\r\nb=two\r\nc=3\r\n", read(t, target))
}

func TestDeploy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "global.ini")
	touch(t, src, "a=1\n")

	_, err := Deploy(src, filepath.Join(dir, "missing"), "english")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInputNotFound))

	install := filepath.Join(dir, "LIVE")
	require.NoError(t, os.MkdirAll(install, 0o755))
	dst, err := Deploy(src, install, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(install, "data", "Localization", "english", "global.ini"), dst)
	assert.Equal(t, "a=1\n", read(t, dst))
}
