package templates

// CSStempl is the stylesheet shared by every report page
var CSStempl = []byte(`body {
  margin: 0;
  font-family: 'Lucida Sans', Arial, sans-serif;
}

ul {
  list-style-type: none;
  margin: 0;
  padding: 0;
  overflow: hidden;
  background-color: #000;
  font-family: "Arial", Helvetica, sans-serif;
}

li {
  float: left;
  border-right: 1px solid #bbb;
}

li:last-child {
  border-right: none;
}

li a {
  display: block;
  color: white;
  text-align: center;
  padding: 14px 16px;
  text-decoration: none;
}

li a:hover {
  background-color: #3B7DD8;
}

.info {
  margin: 10px 0px;
  padding: 12px;
  color: white;
  background-color: #333;
}

.container {
  overflow-x: auto;
  white-space: nowrap;
}

table {
  border-collapse: collapse;
  width: 100%;
}

th, td {
  text-align: right;
  padding: 8px;
}

th {
  background-color: #1F4E8C;
  color: white;
}

tr:nth-child(even) {
  background-color: #f2f2f2;
}

.chart img {
  display: block;
  margin: 20px auto;
  max-width: 100%;
}
`)
