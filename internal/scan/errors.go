package scan

import (
	"errors"
	"fmt"
)

// ErrEnvironment はPMルートが読めないことを表す
//
// 個々のファイルの読み込み失敗はこのエラーにならず、Reportに記録される。
var ErrEnvironment = errors.New("pm root is not accessible")

// EnvironmentError はPMルートの読み込み失敗の詳細
type EnvironmentError struct {
	Root string
	Err  error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("cannot read pm root %s: %v", e.Root, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// Is は errors.Is(err, ErrEnvironment) を成立させる
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironment
}

// Skipped は読み飛ばしたファイルとその理由
type Skipped struct {
	Path   string
	Reason string
}

// Report はスキャン結果の付随情報
type Report struct {
	Files   int       // 読み込めたファイル数
	Skipped []Skipped // 読み飛ばしたファイル
}

// HasSkipped は読み飛ばしたファイルがあるかどうかを返す
func (r *Report) HasSkipped() bool {
	return len(r.Skipped) > 0
}

func (r *Report) skip(path string, err error) {
	r.Skipped = append(r.Skipped, Skipped{Path: path, Reason: err.Error()})
}
