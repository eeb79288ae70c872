package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input and Output": "入力と出力",
		"Resampling":       "リサンプリング",
		"Encoding":         "エンコード",
		"Behavior":         "動作",
		"Logging":          "ログ",

		// Root command
		"Blend high frame rate video down to a lower frame rate": "高フレームレート動画をフレーム合成で低いフレームレートに変換",

		// Flags
		"Input video file":  "入力動画ファイル",
		"Output video file": "出力動画ファイル",
		"Settings file (JSON or YAML, default: settings.json)":                          "設定ファイル（JSONまたはYAML、デフォルト: settings.json）",
		"Output execution summary to file (Markdown format)":                            "実行サマリーをファイルに出力（Markdown形式）",
		"Output frame rate":                                                             "出力フレームレート",
		"Blend mode (EQUAL, GAUSSIAN, GAUSSIAN_SYM, PYRAMID_SYM, ASCENDING, DESCENDING)": "合成モード（EQUAL, GAUSSIAN, GAUSSIAN_SYM, PYRAMID_SYM, ASCENDING, DESCENDING）",
		"Blend range, 1.0 to 2.0 recommended":                                           "合成範囲（1.0〜2.0を推奨）",
		"Output resolution (e.g. 1920x1080 or UNCHANGED)":                               "出力解像度（例: 1920x1080 または UNCHANGED）",
		"Resize interpolation (nearest, bilinear, catmullrom)":                          "リサイズの補間方法（nearest, bilinear, catmullrom）",
		"Fix the colour matrix of the input before resampling":                          "リサンプリング前に入力のカラーマトリクスを補正",
		"Codec tag of the built-in frame writer":                                        "内蔵フレームライターのコーデックタグ",
		"JPEG quality of the built-in frame writer (1-100)":                             "内蔵フレームライターのJPEG品質（1-100）",
		"ffmpeg encoder (libx264, libx265, h264_nvenc, hevc_nvenc, h264_qsv, hevc_qsv, h264_amf)": "ffmpegエンコーダー（libx264, libx265, h264_nvenc, hevc_nvenc, h264_qsv, hevc_qsv, h264_amf）",
		"Encoder preset":                    "エンコーダープリセット",
		"Encoder quality (lower is better)": "エンコード品質（低いほど高品質）",
		"Path to the ffmpeg executable":     "ffmpeg実行ファイルのパス",
		"Continue without asking when the frame rates are not divisible": "フレームレートが割り切れない場合も確認せずに続行",
		"Do not show the progress bar":         "プログレスバーを表示しない",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Error: %s":               "エラー: %s",
		"Continue?":               "続行しますか？",
		"stdin is not a terminal": "標準入力が端末ではありません",

		// Summary content
		"Resampling Summary":      "リサンプリングサマリー",
		"Failed":                  "失敗",
		"Source":                  "入力",
		"Settings":                "設定",
		"Output":                  "出力",
		"Item":                    "項目",
		"Value":                   "値",
		"File":                    "ファイル",
		"Resolution":              "解像度",
		"Frame Rate":              "フレームレート",
		"Frames":                  "フレーム数",
		"Output Frame Rate":       "出力フレームレート",
		"Blend Mode":              "合成モード",
		"Blend Range":             "合成範囲",
		"Colour Fix":              "色補正",
		"Backend":                 "バックエンド",
		"Encoder":                 "エンコーダー",
		"Preset":                  "プリセット",
		"Quality":                 "品質",
		"Output Resolution":       "出力解像度",
		"Frames per Output Frame": "出力1フレームあたりの入力フレーム",
		"Blended Frames":          "合成フレーム数",
		"Weights":                 "重み",
		"Frames Written":          "書き出しフレーム数",
		"Encoder Used":            "使用エンコーダー",
		"Elapsed":                 "処理時間",
		"Black Frames":            "黒フレーム",
		"File Size":               "ファイルサイズ",
		"Codec":                   "コーデック",
		"Samples":                 "サンプル数",
		"Duration":                "再生時間",
		"Audio":                   "音声",
		"Generated at":            "生成日時",
		"fallback":                "代替",
		"source ended early":      "入力が途中で終了",
		"unknown":                 "不明",
		"yes":                     "はい",
		"no":                      "いいえ",
	})
}
