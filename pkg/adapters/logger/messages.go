package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":               "パイプラインを開始します",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Output saved to %s":              "出力を %s に保存しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"Drag and drop mode: %s -> %s":    "ドラッグ＆ドロップモード: %s -> %s",
		"Intermediate file kept: %s":      "中間ファイルを残しました: %s",
		"Failed to open source: %s":       "入力動画を開けませんでした: %s",
		"Failed to resample: %s":          "リサンプリングに失敗しました: %s",
		"Failed to write summary: %s":     "サマリーの書き込みに失敗しました: %s",
		"Summary saved to %s":             "サマリーを %s に保存しました",
		"Output video: %s %dx%d, %d frames, audio: %t": "出力動画: %s %dx%d, %d フレーム, 音声: %t",
		"Could not inspect %s: %s":        "%s を解析できませんでした: %s",

		// Colour fix stage
		"Fixing colour matrix of %s":           "%s のカラーマトリクスを補正中",
		"Failed to fix colours: %s":            "色補正に失敗しました: %s",
		"Failed to restore original source: %s": "元の入力ファイルを復元できませんでした: %s",
		"Moved %s to %s":                       "%s を %s に移動しました",
		"Colour fix finished in %s":            "色補正が %s で完了しました",

		// Resample stage
		"Input %s at %d fps, output %s at %d fps":            "入力 %s (%d fps)、出力 %s (%d fps)",
		"Blending %d frames per output frame (%s, ratio %d)": "出力1フレームあたり %d フレームを合成 (%s, 比率 %d)",
		"Encoding with %s":                                   "%s でエンコード中",
		"Wrote %d frames in %s":                              "%d フレームを %s で書き出しました",
		"Input fps %d is not divisible by output fps %d, audio may drift out of sync": "入力 %d fps は出力 %d fps で割り切れません。音声がずれる可能性があります",
		"Source ended after %d of %d output frames":          "入力が %d / %d フレームで終了しました",
		"State %s -> %s":                                     "状態 %s -> %s",
		"Failed while %s: %v":                                "%s 中に失敗しました: %v",

		// Progress
		"Frame %d/%d, %.2f fps, ETA %s": "フレーム %d/%d, %.2f fps, 残り %s",
		"Frame %d, %.2f fps":            "フレーム %d, %.2f fps",

		// Decoder
		"Opened %s: %dx%d at %.3f fps, %d frames":   "%s を開きました: %dx%d, %.3f fps, %d フレーム",
		"Decoded %d frames from %s":                 "%d フレームを %s からデコードしました",
		"Dropping truncated frame after %d frames":  "%d フレーム後の不完全なフレームを破棄します",

		// Encoders
		"Starting %s %s":                                  "%s %s を起動中",
		"Could not list encoders: %s":                     "エンコーダー一覧を取得できませんでした: %s",
		"Encoder '%s' not available, falling back to %s":  "エンコーダー '%s' は利用できません。%s を使用します",
		"Encoder did not exit, killing it":                "エンコーダーが終了しないため強制終了します",
		"Encoder finished after %d frames":                "エンコーダーが %d フレームで終了しました",
		"Writing %s %dx%d at %d fps to %s":                "%s %dx%d (%d fps) を %s に書き出し中",
		"Writer finished after %d frames":                 "ライターが %d フレームで終了しました",

		// Mux
		"Adding audio from %s":    "%s から音声を追加中",
		"Failed to add audio: %s": "音声の追加に失敗しました: %s",
		"Muxed %s in %s":          "%s を %s で多重化しました",
		"Running ffmpeg %s":       "ffmpeg %s を実行中",
	})
}
