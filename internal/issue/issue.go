// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ModuleNotFoundId Id = iota + 1
	ConfigLoadFailedId
	PropertyFileUnreadableId
	UnsupportedPlatformId
	InvalidModuleIdId
	InvalidPropertyAssignmentId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var extra strings.Builder
	if len(i.extLinks) > 0 {
		extra.WriteString("\n\n## See also:\n")
		for _, link := range i.extLinks {
			extra.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(string(i.mdMsg)+extra.String(), stylePath)
}

var (
	render = glamour.Render

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

No library for the requested module could be loaded.

## Search order
Each variant key is looked up in the property service, most specific first.
A key without a value is skipped. For every key that has a value, halmod tries
~~~
<library_root>/<id>.<value>.<extension>
~~~
and finally
~~~
<library_root>/<id>.default.<extension>
~~~

## Things you can try:
- See which paths were considered:
~~~
$ halmod paths <id>
~~~

- Check the values the variant keys resolve to:
~~~
$ halmod props
~~~

- Confirm the library exports the ` + "`HMI`" + ` symbol and that its ` + "`id`" + `
  field matches the requested module id
- Re-run with ` + "`--verbose`" + ` to see why each candidate was rejected`,
		extLinks: []HttpLink{"https://source.android.com/docs/core/architecture/hal"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your halmod configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax of your config file
- Show where halmod looks for it:
~~~
$ halmod config path
~~~

- Write a fresh default configuration:
~~~
$ halmod config init
~~~

## Example configuration:
~~~cue
library_root: "/vendor/lib/hw"
variant_keys: ["ro.hardware", "ro.product.board", "ro.arch"]
linker: "native"
log: level: "info"
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	propertyFileUnreadableIssue = &Issue{
		id: PropertyFileUnreadableId,
		mdMsg: `
# Property file could not be read!

A configured property file exists but could not be parsed.

## Things you can try:
- Check it uses the ` + "`key=value`" + ` build.prop format, one entry per line
- Check the file permissions
- Remove it from ` + "`property_files`" + ` in your config, or supply values with
~~~
$ halmod --prop ro.product.board=<board> get <id>
~~~`,
	}

	unsupportedPlatformIssue = &Issue{
		id: UnsupportedPlatformId,
		mdMsg: `
# Dynamic loading is not supported here!

The selected linker cannot load libraries on this operating system.

## Things you can try:
- Run halmod on Linux, macOS or FreeBSD
- Switch linkers in your config file:
~~~cue
linker: "plugin"
~~~`,
	}

	invalidModuleIdIssue = &Issue{
		id: InvalidModuleIdId,
		mdMsg: `
# Invalid module id!

Module ids become part of a file name, so they must be non-empty and must not
contain path separators.

## Examples of valid ids:
- ` + "`sensors`" + `
- ` + "`audio.primary`" + `
- ` + "`gralloc`",
	}

	invalidPropertyAssignmentIssue = &Issue{
		id: InvalidPropertyAssignmentId,
		mdMsg: `
# Invalid property assignment!

Properties given on the command line must have the form ` + "`key=value`" + `.

## Example:
~~~
$ halmod --prop ro.product.board=msm8998 --prop ro.arch=arm64 get sensors
~~~`,
	}

	issues = map[Id]*Issue{
		moduleNotFoundIssue.Id():            moduleNotFoundIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		propertyFileUnreadableIssue.Id():    propertyFileUnreadableIssue,
		unsupportedPlatformIssue.Id():       unsupportedPlatformIssue,
		invalidModuleIdIssue.Id():           invalidModuleIdIssue,
		invalidPropertyAssignmentIssue.Id(): invalidPropertyAssignmentIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
