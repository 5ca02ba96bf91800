package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

var (
	extractFlag  = flag.Bool("x", false, "extract frames")
	audioFlag    = flag.Bool("a", false, "extract audio")
	framesFlag   = flag.Bool("f", false, "compose image records and write one PNG per frame (with -x)")
	listFlag     = flag.Bool("l", false, "list frame records")
	outputDir    = flag.String("o", ".", "output directory")
	debugFlag    = flag.Bool("d", false, "debug mode (show more info)")
	rawFlag      = flag.Bool("raw", false, "write inflated payloads without RLE expansion")
	cursorFlag   = flag.Bool("c", false, "also write cursor payloads")
	zstdFlag     = flag.Bool("z", false, "compress written files with zstd")
	password     = flag.String("k", "", "play lock password")
	forceFlag    = flag.Bool("force", false, "use the password even if its checksum does not match")
	frameLimit   = flag.Int("n", 0, "stop after this many image records (0 for all)")
	parallelFlag = flag.Bool("p", false, "use parallel writers")
	workerCount  = flag.Int("w", 4, "number of writer goroutines for parallel extraction")
)

func main() {
	flag.Parse()

	// 引数チェック
	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("使用方法: pmlxzj [オプション] <動画ファイル>")
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	filename := args[0]

	c, err := lxe.Open(filename)
	if err != nil {
		if lxe.IsFormatError(err) {
			fmt.Fprintf(os.Stderr, "エラー: %s は対応している動画ファイルではありません: %v\n", filename, err)
		} else {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		}
		os.Exit(1)
	}

	if *debugFlag {
		printMetadata(filename, c)
	}

	if *password != "" {
		if err := c.SetPassword(*password, *forceFlag); err != nil {
			if !*forceFlag {
				fmt.Fprintf(os.Stderr, "エラー: %v (-force で強制的に使用できます)\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "警告: %v\n", err)
		}
	}

	if *listFlag {
		if err := listRecords(c); err != nil {
			fmt.Fprintf(os.Stderr, "\nエラー: %v\n", err)
			os.Exit(1)
		}
	}

	if *audioFlag {
		path, err := extractAudio(c, *outputDir, *zstdFlag)
		switch {
		case errors.Is(err, lxe.ErrNoAudio):
			fmt.Println("音声データはありません")
		case errors.Is(err, lxe.ErrUnsupportedAudio):
			fmt.Fprintf(os.Stderr, "警告: %v\n", err)
		case err != nil:
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
			os.Exit(1)
		default:
			fmt.Printf("音声を書き出しました: %s\n", path)
		}
	}

	if *extractFlag {
		opts := extractOptions{
			outDir:     *outputDir,
			raw:        *rawFlag,
			cursors:    *cursorFlag,
			compress:   *zstdFlag,
			frameLimit: *frameLimit,
			frames:     *framesFlag,
		}

		var count int
		if *parallelFlag {
			count, err = extractParallel(c, opts, *workerCount)
		} else {
			count, err = extractSequential(c, opts)
		}

		fmt.Printf("\n%d 個のファイルを書き出しました\n", count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "抽出処理中にエラーが発生しました: %v\n", err)
			if errors.Is(err, lxe.ErrPasswordRequired) {
				fmt.Fprintln(os.Stderr, "-k オプションで再生パスワードを指定してください")
			}
			os.Exit(1)
		}
	}
}

// printMetadata はコンテナの情報を表示します
func printMetadata(filename string, c *lxe.Container) {
	m := c.Metadata
	fmt.Printf("ファイル: %s\n", filename)
	fmt.Printf("サイズ: %d バイト\n", m.FileSize)
	fmt.Printf("タイトル: %s\n", m.Title)
	fmt.Printf("解像度: %dx%d, フレーム数: %d, %d ms/フレーム\n", m.Width, m.Height, m.FramesCnt, m.Video.FrameMs)
	fmt.Printf("動画情報: 0x%08x (旧形式: %v), ストリーム開始: 0x%08x\n", m.VideoOffset, m.LegacyLayout, m.FrameStreamStart)
	if m.AudioOffset >= 0 {
		fmt.Printf("音声: 0x%08x (%s)\n", m.AudioOffset, lxe.AudioType(m.Player.AudioType))
	}
	fmt.Printf("ロック: %s\n", c.Lock())
	fmt.Println()
}

// listRecords はフレームストリームのレコード一覧を表示します
func listRecords(c *lxe.Container) error {
	fmt.Println("レコード一覧:")
	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("%-10s %6s %10s %-22s %10s %10s\n", "種類", "番号", "位置", "矩形", "圧縮", "展開")
	fmt.Println("----------------------------------------------------------------")

	w := c.Walk(lxe.WalkOptions{})
	images := 0
	for w.Next() {
		rec := w.Record()
		r := rec.Rect
		rect := fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
		if rec.Kind == lxe.KindCursor {
			rect = fmt.Sprintf("(%d,%d)", r.Left, r.Top)
		}
		fmt.Printf("%-10s %6d 0x%08x %-22s %10d %10d\n",
			rec.Kind, rec.Number, rec.Offset, rect, rec.StreamLen, len(rec.Data))

		if rec.Kind == lxe.KindImage {
			images++
			if *frameLimit > 0 && images >= *frameLimit {
				break
			}
		}
	}
	fmt.Println("----------------------------------------------------------------")

	if err := w.Err(); err != nil {
		return err
	}
	if w.Done() {
		fmt.Printf("終端: 0x%08x\n", w.Offset())
	}
	return nil
}
