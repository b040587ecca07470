package fakehttp

// actionList holds side-effect hooks run in registration order.
type actionList struct {
	actions []func() error
}

func (l *actionList) add(action func() error) {
	l.actions = append(l.actions, action)
}

// invokeAll stops at and returns the first error.
func (l *actionList) invokeAll() error {
	if l == nil {
		return nil
	}
	for _, action := range l.actions {
		if err := action(); err != nil {
			return err
		}
	}
	return nil
}
