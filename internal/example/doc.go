// Package example locates the displayable body of an example source file.
//
// An example file carries a prelude marker line, the body shown to readers,
// a postscript marker line and trailing setup code:
//
//	var React = require('react');
//	// PRELUDE
//	var Hello = React.createClass({ ... });
//	// POSTSCRIPT
//	React.renderComponent(<Hello />, mountNode);
//
// Only the lines strictly between the markers are highlighted in the page;
// the whole file is bundled.
package example
