package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestrator messages
		"Sampling frames from %s at %d fps":       "%s から %d fps でフレームをサンプリング中",
		"Sampled %d of %d frames (stride %d)":     "%d / %d フレームをサンプリングしました (ストライド %d)",
		"Loading model and reconstructing meshes": "モデルを読み込みメッシュを再構築中",
		"Reconstructed %d frames in %d ms":        "%d フレームを %d ms で再構築しました",
		"Saved meshes for %d frames to %s":        "%d フレーム分のメッシュを %s に保存しました",

		// Sample stage
		"Native rate %.3f fps, retaining every %d frames": "ネイティブレート %.3f fps、%d フレームごとに採用",
		"Decoded %d frames, retained %d":                  "%d フレームをデコードし %d フレームを採用しました",

		// Infer stage
		"Model loaded in %d ms: %d vertices, %d camera params, %dpx input": "モデル読み込み完了 (%d ms): 頂点 %d, カメラパラメータ %d, 入力 %dpx",
		"Model released": "モデルを解放しました",

		// Archive stage
		"Packed %d frames into %d bytes": "%d フレームを %d バイトに格納しました",

		// Errors
		"Failed to sample frames: %s":           "フレームのサンプリングに失敗しました: %s",
		"Failed to create output directory: %s": "出力ディレクトリの作成に失敗しました: %s",
		"Failed to reconstruct meshes: %s":      "メッシュの再構築に失敗しました: %s",
		"Failed to pack archive: %s":            "アーカイブの格納に失敗しました: %s",
		"Failed to write archive: %s":           "アーカイブの書き込みに失敗しました: %s",
	})
}
