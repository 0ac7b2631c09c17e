package trace

import (
	"errors"

	"github.com/brilles/Computer-Architecture/translate"
)

var f = translate.From

var (
	ErrWatch       = errors.New(f("watch"))
	ErrWatchResult = errors.New(f("watch expression has no result"))
)
