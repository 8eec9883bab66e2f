package fetch

type Option func(o *options)

type options struct {
	contentTypes []string
	headers      map[string]string
}

// ContentTypes extends the list of acceptable media types of the response.
func ContentTypes(mediaTypes ...string) Option {
	return func(o *options) {
		o.contentTypes = append(o.contentTypes, mediaTypes...)
	}
}

func Header(name string, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[name] = value
	}
}
