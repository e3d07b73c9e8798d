package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"struct S { a: u8 }\n",
	"#[derive(Builder)]\npub struct S {\n    #[builder(each = \"item\")]\n    items: Vec<String>,\n    name: Option<String>,\n}\n",
	"#[derive(CustomDebug)]\nstruct F<T: Trait> {\n    values: Vec<T::Value>,\n    marker: PhantomData<T>,\n}\n",
	"seq!(N in 0..4 { fn f~N() {} });\n",
	"enum E { A, B(u8), C { x: i32 } }\n",
	"struct T(u8, pub String);\n",
	"mod m {\n    use super::*;\n    fn f() -> r#type { loop {} }\n}\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
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
