package health

import "errors"

var errNotAnImage = errors.New("response is not an image")
