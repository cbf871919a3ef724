package a

import (
	"time"
	clock "time"
)

func stampCreated() time.Time {
	return time.Now() // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
}

func stampUpdated() time.Time {
	return time.Now().UTC()
}

func stampTruncated() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func parenthesized() time.Time {
	return (time.Now()).UTC()
}

func renamedImport() time.Time {
	return clock.Now() // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
}

func renamedImportUTC() time.Time {
	return clock.Now().UTC()
}

func toLocal(t time.Time) time.Time {
	return t.Local() // want `\(time.Time\).Local\(\) converts to the server timezone; keep times in UTC`
}

func inLocal(t time.Time) time.Time {
	return t.In(time.Local) // want `time.Local is the server timezone; use time.UTC`
}

func inUTC(t time.Time) time.Time {
	return t.In(time.UTC)
}

type clockish struct{}

func (clockish) Now() time.Time { return time.Time{} }

func notTheTimePackage() time.Time {
	var c clockish
	return c.Now()
}

func nolintGeneral() time.Time {
	//nolint
	return time.Now()
}

func nolintSpecific() time.Time {
	return time.Now() //nolint:timeutc
}

func nolintList() time.Time {
	return time.Now() //nolint:errcheck,timeutc
}

func nolintOtherLinter() time.Time {
	return time.Now() //nolint:otherlinter // want `time.Now\(\) should be followed by .UTC\(\) for timezone consistency`
}
