package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

// extractOptions は抽出の設定
type extractOptions struct {
	outDir     string
	raw        bool
	cursors    bool
	compress   bool
	frameLimit int
	// frames を指定すると画像レコードを画面に合成し、フレームごとにPNGを書き出します
	frames bool
}

// 書き出しジョブを表す構造体
type writeJob struct {
	name    string
	data    []byte
	img     image.Image // 指定されている場合はPNGに変換して書き出す
	outPath string
}

// payload は書き出す内容を返します
func (j writeJob) payload() ([]byte, error) {
	if j.img == nil {
		return j.data, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, j.img); err != nil {
		return nil, fmt.Errorf("PNGの変換に失敗: %w", err)
	}
	return buf.Bytes(), nil
}

// 並列書き出しに使用するコンテキスト
type writeContext struct {
	opts    extractOptions
	jobs    chan writeJob
	results chan writeResult
	wg      sync.WaitGroup
	mu      sync.Mutex // 出力用のミューテックス
}

// 書き出し結果
type writeResult struct {
	name string
	err  error
}

// walkJobs はフレームストリームを先頭から読み、書き出すレコードごとに emit を呼びます。
// ストリームの読み込みは順序に依存するため、常に1つのgoroutineで行います。
func walkJobs(c *lxe.Container, opts extractOptions, emit func(writeJob)) error {
	if opts.frames && opts.raw {
		return errors.New("フレームの合成にはRLE展開が必要です (-raw と同時に指定できません)")
	}

	var canvas *lxe.Canvas
	if opts.frames {
		var err error
		if canvas, err = lxe.NewCanvas(c.Metadata.Width, c.Metadata.Height); err != nil {
			return err
		}
	}
	// pending は画面に合成済みでまだ書き出していないフレーム番号
	pending := int32(-1)
	flush := func() {
		if pending < 0 {
			return
		}
		emit(newJob(opts, fmt.Sprintf("frame_%05d.png", pending), nil, canvas.Snapshot()))
		pending = -1
	}

	w := c.Walk(lxe.WalkOptions{Expand: !opts.raw})
	images := 0
	for w.Next() {
		rec := w.Record()

		switch rec.Kind {
		case lxe.KindImage:
			images++
			if canvas != nil {
				if rec.Number != pending {
					flush()
				}
				if err := canvas.Apply(rec); err != nil {
					return fmt.Errorf("フレーム %d の合成に失敗: %w", rec.Number, err)
				}
				pending = rec.Number
				break
			}
			data := rec.Bitmap
			if opts.raw {
				data = rec.Data
			}
			emit(newJob(opts, fmt.Sprintf("image_%05d.bin", rec.Number), data, nil))
		case lxe.KindCursor:
			if !opts.cursors {
				continue
			}
			emit(newJob(opts, fmt.Sprintf("cursor_%05d.bin", rec.Number), rec.Data, nil))
		default:
			continue
		}

		if opts.frameLimit > 0 && rec.Kind == lxe.KindImage && images >= opts.frameLimit {
			flush()
			return nil
		}
	}
	if err := w.Err(); err != nil {
		return err
	}
	flush()
	return nil
}

func newJob(opts extractOptions, name string, data []byte, img image.Image) writeJob {
	if opts.compress {
		name += ".zst"
	}
	return writeJob{name: name, data: data, img: img, outPath: filepath.Join(opts.outDir, name)}
}

// 並列処理で抽出を実行
func extractParallel(c *lxe.Container, opts extractOptions, numWorkers int) (successCount int, err error) {
	if numWorkers <= 0 {
		numWorkers = 4 // デフォルトのワーカー数
	}

	// 出力ディレクトリを作成
	if errMkdir := os.MkdirAll(opts.outDir, 0755); errMkdir != nil {
		return 0, fmt.Errorf("出力ディレクトリを作成できません: %w", errMkdir)
	}

	ctx := &writeContext{
		opts:    opts,
		jobs:    make(chan writeJob, numWorkers*2),
		results: make(chan writeResult, numWorkers*2),
	}

	// ワーカーを起動
	for i := 0; i < numWorkers; i++ {
		ctx.wg.Add(1)
		go writeWorker(ctx)
	}

	// 結果処理用のgoroutineを起動
	var resultErr error
	resultDone := make(chan struct{})
	go func() {
		for result := range ctx.results {
			if result.err == nil {
				successCount++
				if *debugFlag {
					ctx.mu.Lock()
					fmt.Printf("成功: %s\n", result.name)
					ctx.mu.Unlock()
				}
				continue
			}
			ctx.mu.Lock()
			fmt.Fprintf(os.Stderr, "書き出しに失敗しました: %s - %v\n", result.name, result.err)
			ctx.mu.Unlock()
			if resultErr == nil { // 最初のエラーを保持
				resultErr = fmt.Errorf("書き出しエラー: %s: %w", result.name, result.err)
			}
		}
		close(resultDone)
	}()

	walkErr := walkJobs(c, opts, func(job writeJob) {
		ctx.jobs <- job
	})

	// 全てのジョブが投入されたらチャネルを閉じる
	close(ctx.jobs)
	ctx.wg.Wait()
	close(ctx.results)
	<-resultDone

	if walkErr != nil {
		return successCount, walkErr
	}
	return successCount, resultErr
}

// 書き出しワーカー
func writeWorker(ctx *writeContext) {
	defer ctx.wg.Done()

	for job := range ctx.jobs {
		ctx.results <- writeResult{
			name: job.name,
			err:  writeJobFile(job, ctx.opts.compress),
		}
	}
}

// 並列処理なしで抽出
func extractSequential(c *lxe.Container, opts extractOptions) (successCount int, err error) {
	// 出力ディレクトリを作成
	if errMkdir := os.MkdirAll(opts.outDir, 0755); errMkdir != nil {
		return 0, fmt.Errorf("出力ディレクトリを作成できません: %w", errMkdir)
	}

	var firstError error
	walkErr := walkJobs(c, opts, func(job writeJob) {
		if err := writeJobFile(job, opts.compress); err != nil {
			fmt.Fprintf(os.Stderr, "書き出しに失敗しました: %s - %v\n", job.name, err)
			if firstError == nil {
				firstError = fmt.Errorf("書き出しエラー: %s: %w", job.name, err)
			}
			return
		}
		successCount++
		if *debugFlag {
			fmt.Printf("成功: %s\n", job.name)
		}
	})

	if walkErr != nil {
		return successCount, walkErr
	}
	return successCount, firstError
}

func writeJobFile(job writeJob, compress bool) error {
	data, err := job.payload()
	if err != nil {
		return err
	}
	return writeFile(job.outPath, data, compress)
}

// writeFile はデータをファイルに書き出します。compress が真の場合はzstdで圧縮します。
func writeFile(outPath string, data []byte, compress bool) error {
	if compress {
		enc, err := zstdEncoder()
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, make([]byte, 0, len(data)/4))
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}

	// バッファ付きライターを使用
	writer := bufio.NewWriter(outFile)
	_, writeErr := writer.Write(data)
	flushErr := writer.Flush()
	closeErr := outFile.Close()

	if err := errors.Join(writeErr, flushErr, closeErr); err != nil {
		os.Remove(outPath) // 失敗したらファイルを削除
		return err
	}
	return nil
}

// 共有エンコーダー (EncodeAll は並行に呼び出せる)
var zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
})
