// Package main provides localization for the handmesh CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Extract 3D hand mesh sequences from videos.": "動画から3Dハンドメッシュ系列を抽出",

		// Extract command
		"Extract 3D hand meshes from a video into an .npz archive.": "動画から3Dハンドメッシュを抽出し.npzアーカイブに保存",
		"Path to the input video file.":                             "入力動画ファイルのパス",
		"Directory for the mesh archive (default: results).":        "メッシュアーカイブの出力ディレクトリ（デフォルト: results）",
		"Target sampling rate in frames per second (default: 2).":   "目標サンプリングレート（fps、デフォルト: 2）",
		"Compute device for inference (default: cuda).":             "推論に使う計算デバイス（デフォルト: cuda）",
		"Path to a YAML config file.":                               "YAML設定ファイルのパス",

		// Probe command
		"Inspect a video container without decoding frames.": "フレームをデコードせずに動画コンテナを検査",
		"Video file to inspect.":                             "検査する動画ファイル",
		"Target rate for the reported sampling plan.":        "サンプリングプランの目標レート",
		"Print metadata as JSON.":                            "メタデータをJSONで出力",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"handmesh (Go) version %s":  "handmesh (Go版) バージョン %s",

		// Debug flags
		"Enable debug output.":                            "デバッグ出力を有効化",
		"Directory for debug output (default: ./debug).":  "デバッグ出力のディレクトリ（デフォルト: ./debug）",

		// Logging flags
		"Log level (debug, info, warn, error).": "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":              "全てのログ出力を抑制",

		// Summary output flag
		"Output execution summary to file (Markdown format).": "実行サマリーをファイルに出力（Markdown形式）",

		// Runtime messages
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",
		"Extraction completed successfully": "抽出が正常に完了しました",
		"Summary saved to %s":               "サマリーを %s に保存しました",
		"Failed to write summary: %s":       "サマリーの書き込みに失敗しました: %s",

		// Probe output
		"Video: %s":               "動画: %s",
		"Codec: %s":               "コーデック: %s",
		"Dimensions: %dx%d":       "解像度: %dx%d",
		"Duration: %.2f s":        "再生時間: %.2f 秒",
		"Frames: %d":              "フレーム数: %d",
		"Declared rate: %.3f fps": "宣言レート: %.3f fps",
		"Stride at %d fps: %d":    "%d fps でのストライド: %d",
		"Frames kept: %d":         "採用フレーム数: %d",

		// Summary content
		"Extraction Summary": "抽出サマリー",
		"Generated":          "生成日時",
		"Version":            "バージョン",
		"Source":             "入力",
		"Sampling":           "サンプリング",
		"Mesh":               "メッシュ",
		"Model":              "モデル",
		"Output":             "出力",
		"Item":               "項目",
		"Value":              "値",

		// Source section
		"Video":      "動画",
		"Native FPS": "ネイティブFPS",

		// Sampling section
		"Target FPS":  "目標FPS",
		"Stride":      "ストライド",
		"Frames Kept": "採用フレーム",

		// Mesh section
		"Frames":             "フレーム数",
		"Vertices per Frame": "フレームあたり頂点数",
		"Triangles":          "三角形数",
		"Camera Params":      "カメラパラメータ数",

		// Model section
		"Device":         "デバイス",
		"Checkpoint":     "チェックポイント",
		"Load Time":      "読み込み時間",
		"Inference Time": "推論時間",

		// Output section
		"Archive": "アーカイブ",
		"Size":    "サイズ",
	})
}
