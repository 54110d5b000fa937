package data

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// ConfigWatcher は設定ファイルの変更を監視し、検証に通った Config を Updates に流します。
// 受け取った側は次の戦闘から新しい設定を使います。戦闘の途中では差し替えません。
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	paths   AssetPaths
	logger  *zap.Logger
	Updates chan Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewConfigWatcher は paths.ParryConfig のあるディレクトリを監視します。
// エディタの保存方法によってはファイル自体が置き換わるため、ディレクトリ単位で監視します。
func NewConfigWatcher(paths AssetPaths, logger *zap.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(paths.ParryConfig)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		watcher: w,
		path:    filepath.Clean(paths.ParryConfig),
		paths:   paths,
		logger:  logger,
		Updates: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Latest は溜まっている更新のうち最新のものを返します。ブロックしません。
func (w *ConfigWatcher) Latest() (Config, bool) {
	var (
		cfg Config
		ok  bool
	)
	for {
		select {
		case c := <-w.Updates:
			cfg, ok = c, true
		default:
			return cfg, ok
		}
	}
}

// run はイベントが 100ms 途切れてから1回だけ読み込みます。
// 保存1回で書き込みイベントが複数届くため、途中の内容を読まないようにしています。
func (w *ConfigWatcher) run() {
	var debounce <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			debounce = time.After(reloadDebounce)
		case <-debounce:
			debounce = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *ConfigWatcher) reload() {
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		return
	}
	cfg, err := LoadConfig(w.paths)
	if err != nil {
		w.logger.Warn("設定の再読み込みに失敗しました。現在の設定を使い続けます", zap.Error(err))
		w.sendError(err)
		return
	}
	w.logger.Info("設定を再読み込みしました。次の戦闘から反映されます", zap.String("path", w.path))
	// 古い更新は捨てて最新だけを残す
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *ConfigWatcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
