package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var phpSeeds = []string{
	"",
	"<?php\n",
	"<html><?php echo 'hi'; ?>\n<p>x</p>",
	"<?php\n$label = __( 'Save settings', 'uncanny-automator' );\necho $label;\n",
	"<?php\necho esc_html__( 'Connect to google sheets', 'uncanny-automator' );\n",
	"<?php\n/* translators: %s is the user name */\nprintf( __( 'Hello %s', 'uncanny-automator' ), $name );\n",
	"<?php\nclass A {\n\tpublic function __construct( $a ) {}\n\t// setup\n\tpublic function run() {}\n}\n",
	"<?php\nif ( $a == 'x' ) { elog( $a ); }   \n",
	"<?php $a ??= $b?->c ?? 0x1F + 1_000 * .5e3; #[Attr] function f(...$a) { return match($a) { 1 => fn($x) => $x }; }",
	"<?php\n$s = <<<EOT\nline $x\n  EOT;\n$t = <<<'NOW'\nraw\nNOW;\n",
	"<?php 'unterminated",
	"<?php /* open",
	"<?= $x ?>tail",
	"\xEF\xBB\xBF<?php\r\n$a = 'it\\'s';\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range phpSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every PHP file under the repository's testdata
// directory, when there is one.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".php" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
